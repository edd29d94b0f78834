package reqres

import (
	"encoding/json"
	"testing"
)

func TestCreatedUserRecord_EmailPresent(t *testing.T) {
	var rec CreatedUserRecord
	err := json.Unmarshal([]byte(`{"name":"Ronit","email":"ronit@example.com","id":"123","createdAt":"2023-01-01T12:00:00.000Z"}`), &rec)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.Name != "Ronit" || rec.ID != "123" || rec.CreatedAt != "2023-01-01T12:00:00.000Z" {
		t.Fatalf("record = %#v, want name/id/createdAt populated", rec)
	}
	if rec.Email == nil || *rec.Email != "ronit@example.com" {
		t.Fatalf("Email = %v, want ronit@example.com", rec.Email)
	}
	if rec.Job != nil {
		t.Fatalf("Job = %v, want nil", *rec.Job)
	}
}

func TestCreatedUserRecord_JobCopiedIntoEmail(t *testing.T) {
	var rec CreatedUserRecord
	err := json.Unmarshal([]byte(`{"name":"morpheus","job":"leader","id":"7","createdAt":"2024-05-01T00:00:00Z"}`), &rec)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.Job == nil || *rec.Job != "leader" {
		t.Fatalf("Job = %v, want leader", rec.Job)
	}
	if rec.Email == nil || *rec.Email != "leader" {
		t.Fatalf("Email = %v, want job value leader", rec.Email)
	}
}

func TestCreatedUserRecord_NeitherEmailNorJob(t *testing.T) {
	var rec CreatedUserRecord
	err := json.Unmarshal([]byte(`{"name":"x","email":null,"id":"1","createdAt":"now"}`), &rec)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.Email != nil || rec.Job != nil {
		t.Fatalf("Email/Job = %v/%v, want nil/nil", rec.Email, rec.Job)
	}
	if rec.EmailOrEmpty() != "" {
		t.Fatalf("EmailOrEmpty = %q, want empty", rec.EmailOrEmpty())
	}
}

func TestCreatedUserRecord_NumericIDAccepted(t *testing.T) {
	var rec CreatedUserRecord
	if err := json.Unmarshal([]byte(`{"name":"x","id":42,"createdAt":"now"}`), &rec); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.ID != "42" {
		t.Fatalf("ID = %q, want 42", rec.ID)
	}
}

func TestCreatedUserRecord_MissingRequiredFields(t *testing.T) {
	for _, body := range []string{
		`{"email":"a","id":"1","createdAt":"now"}`,
		`{"name":"x","email":"a","createdAt":"now"}`,
		`{"name":"x","email":"a","id":"1"}`,
		`{"name":"x","id":{},"createdAt":"now"}`,
	} {
		var rec CreatedUserRecord
		if err := json.Unmarshal([]byte(body), &rec); err == nil {
			t.Fatalf("Unmarshal(%s) returned nil error, want error", body)
		}
	}
}

func TestUserEnvelope_Decodes(t *testing.T) {
	var env UserEnvelope
	err := json.Unmarshal([]byte(`{
  "data": {"id": 2, "email": "janet.weaver@reqres.in", "first_name": "Janet", "last_name": "Weaver", "avatar": "https://reqres.in/img/faces/2-image.jpg"},
  "support": {"url": "https://reqres.in/#support-heading", "text": "support"}
}`), &env)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if env.Data.FullName() != "Janet Weaver" {
		t.Fatalf("FullName = %q, want Janet Weaver", env.Data.FullName())
	}
	if env.Data.AvatarURL != "https://reqres.in/img/faces/2-image.jpg" {
		t.Fatalf("AvatarURL = %q", env.Data.AvatarURL)
	}
	if env.Support.URL == "" {
		t.Fatalf("Support.URL empty, want populated")
	}
}
