package reqres

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Users is the application-level API the view-state store drives.
type Users interface {
	CreateUser(ctx context.Context, name, email string) (CreatedUserRecord, error)
	FetchUser(ctx context.Context, id int) (UserRecord, error)
}

// Ensure UserService implements Users at compile time.
var _ Users = (*UserService)(nil)

// UserService maps user operations onto Client requests. Errors from the
// client are returned unchanged.
type UserService struct {
	client  *Client
	timeout time.Duration
}

// NewUserService wraps client. A zero timeout defers to the client default.
func NewUserService(client *Client, timeout time.Duration) *UserService {
	return &UserService{client: client, timeout: timeout}
}

// CreateUser posts a new user.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (CreatedUserRecord, error) {
	body := CreateUserRequest{Name: name, Email: email}
	return Do[CreatedUserRecord](ctx, s.client, http.MethodPost, "/users", body, s.timeout)
}

// FetchUser loads a single user and strips the response envelope.
func (s *UserService) FetchUser(ctx context.Context, id int) (UserRecord, error) {
	envelope, err := Do[UserEnvelope](ctx, s.client, http.MethodGet, "/users/"+strconv.Itoa(id), nil, s.timeout)
	if err != nil {
		return UserRecord{}, err
	}
	return envelope.Data, nil
}
