package reqres

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
)

const janetBody = `{
  "data": {
    "id": 2,
    "email": "janet.weaver@reqres.in",
    "first_name": "Janet",
    "last_name": "Weaver",
    "avatar": "https://reqres.in/img/faces/2-image.jpg"
  },
  "support": {
    "url": "https://reqres.in/#support-heading",
    "text": "To keep ReqRes free, contributions towards server costs are appreciated!"
  }
}`

func newTestService(t *testing.T, handler http.HandlerFunc) *UserService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return NewUserService(c, 0)
}

func TestUserService_FetchUserUnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/users/2" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(janetBody))
	})

	got, err := svc.FetchUser(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchUser returned error: %v", err)
	}
	want := UserRecord{
		ID:        2,
		Email:     "janet.weaver@reqres.in",
		FirstName: "Janet",
		LastName:  "Weaver",
		AvatarURL: "https://reqres.in/img/faces/2-image.jpg",
	}
	if got != want {
		t.Fatalf("FetchUser = %#v, want %#v", got, want)
	}
}

func TestUserService_FetchUserNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{}"))
	})

	_, err := svc.FetchUser(context.Background(), 999)
	if !errors.Is(err, ServerError(404)) {
		t.Fatalf("FetchUser error = %v, want ServerError(404)", err)
	}
	if err.Error() != "Server error: 404" {
		t.Fatalf("message = %q, want Server error: 404", err.Error())
	}
}

func TestUserService_CreateUserPostsBody(t *testing.T) {
	t.Parallel()

	var got map[string]string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/users" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"Ronit","email":"ronit@example.com","id":"123","createdAt":"2023-01-01T12:00:00.000Z"}`))
	})

	rec, err := svc.CreateUser(context.Background(), "Ronit", "ronit@example.com")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if got["name"] != "Ronit" || got["email"] != "ronit@example.com" || len(got) != 2 {
		t.Fatalf("request body = %v, want {name, email}", got)
	}
	if rec.Name != "Ronit" || rec.EmailOrEmpty() != "ronit@example.com" || rec.ID != "123" {
		t.Fatalf("CreateUser = %#v, want Ronit/123", rec)
	}
}

func TestUserService_CreateUserNotConnectedMapsToNoConnectivity(t *testing.T) {
	c, err := NewClient("", WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}
	})))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	svc := NewUserService(c, 0)

	_, err = svc.CreateUser(context.Background(), "Ronit", "ronit@example.com")
	if !errors.Is(err, ErrNoConnectivity) {
		t.Fatalf("CreateUser error = %v, want NoConnectivity", err)
	}
}

func TestUserService_PropagatesErrorsVerbatim(t *testing.T) {
	c, err := NewClient("", WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("socket closed")
	})))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	svc := NewUserService(c, 0)

	_, err = svc.FetchUser(context.Background(), 1)
	reqErr, ok := AsRequestError(err)
	if !ok || reqErr.Kind != KindTransport || reqErr.Detail != "socket closed" {
		t.Fatalf("FetchUser error = %#v, want Transport(socket closed)", err)
	}
}
