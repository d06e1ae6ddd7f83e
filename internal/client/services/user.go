package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/models"
)

const (
	usersPath       = "/users"
	usersBatchPath  = "/users/batch"
	usersAvatarPath = "/users/avatar"

	defaultPageSize = 10
)

// UserService manages admin-panel user accounts.
type UserService interface {
	List(ctx context.Context, q models.UserQuery, page client.PageQuery) (client.Page[models.User], error)
	Get(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, form models.UserForm) error
	Update(ctx context.Context, id string, form models.UserForm) error
	Delete(ctx context.Context, id string) error
	BatchDelete(ctx context.Context, ids []string) error
	// UploadAvatar sends content as a multipart file and returns the stored
	// image URL.
	UploadAvatar(ctx context.Context, fileName string, content io.Reader) (string, error)
}

type userService struct {
	api *client.Client
}

func NewUserService(api *client.Client) UserService {
	return &userService{api: api}
}

// List fetches one page of users. A zero page number or size means the
// first page of defaultPageSize.
func (s *userService) List(ctx context.Context, q models.UserQuery, page client.PageQuery) (client.Page[models.User], error) {
	if page.PageNum <= 0 {
		page.PageNum = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = defaultPageSize
	}

	params := q.Values()
	params.Set("pageNum", strconv.Itoa(page.PageNum))
	params.Set("pageSize", strconv.Itoa(page.PageSize))

	out, err := client.Do[client.Page[models.User]](ctx, s.api, client.Get(usersPath, client.WithQuery(params)))
	if err != nil {
		return out, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := client.Do[models.User](ctx, s.api, client.Get(userPath(id)))
	if err != nil {
		return u, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, form models.UserForm) error {
	if _, err := s.api.Request(ctx, client.Post(usersPath, form)); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) Update(ctx context.Context, id string, form models.UserForm) error {
	if _, err := s.api.Request(ctx, client.Put(userPath(id), form)); err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.api.Request(ctx, client.Delete(userPath(id))); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func (s *userService) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	req := client.Delete(usersBatchPath, client.WithBody(models.BatchDeleteRequest{IDs: ids}))
	if _, err := s.api.Request(ctx, req); err != nil {
		return fmt.Errorf("batch delete users: %w", err)
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, fileName string, content io.Reader) (string, error) {
	body := &client.MultipartBody{FieldName: "file", FileName: fileName, Content: content}
	out, err := client.Do[models.AvatarUpload](ctx, s.api, client.Post(usersAvatarPath, body))
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return out.URL, nil
}

func userPath(id string) string {
	return usersPath + "/" + url.PathEscape(id)
}
