package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/server/users"
	"github.com/go-chi/chi/v5"
)

// decodeForm decodes and validates a JSON body. On failure it writes the
// business error and returns false.
func (s *Server) decodeForm(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBusinessError(w, codeBadInput, "malformed request")
		return false
	}
	if msg := s.validator.check(v); msg != "" {
		writeBusinessError(w, codeBadInput, msg)
		return false
	}
	return true
}

// writeServiceError maps service errors onto the envelope contract.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeStatus(w, http.StatusNotFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeBusinessError(w, codeBadInput, "username already taken")
	case errors.Is(err, common.ErrInvalidPassword):
		writeBusinessError(w, codeBadInput, "username and password are required")
	default:
		s.logger.Error(r.Context(), err.Error())
		writeStatus(w, http.StatusInternalServerError)
	}
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeForm(w, r, &req) {
		return
	}

	user, tokens, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeBusinessError(w, codeBadInput, "invalid username or password")
		case errors.Is(err, common.ErrorForbidden):
			writeBusinessError(w, codeBadInput, "account disabled")
		default:
			writeBusinessError(w, codeFailed, "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "Logged in", "username", user.UserName)
	writeData(w, loginResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    seconds(tokens.ExpiresIn),
		UserInfo:     toUserInfo(user),
	})
}

func (s *Server) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !s.decodeForm(w, r, &req) {
		return
	}

	tokens, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeData(w, refreshResponse{Token: tokens.AccessToken, ExpiresIn: seconds(tokens.ExpiresIn)})
}

// Captcha serves a throwaway SVG image of four random digits.
func (s *Server) Captcha(w http.ResponseWriter, r *http.Request) {
	b := common.GenerateRandByteArray(4)
	digits := make([]byte, len(b))
	for i, v := range b {
		digits[i] = '0' + v%10
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="40"><text x="10" y="28" font-size="24">%s</text></svg>`, digits)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := s.users.Logout(r.Context(), user.ID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, nil)
}

func (s *Server) Permissions(w http.ResponseWriter, r *http.Request) {
	perms := s.users.Permissions(userFromContext(r.Context()))
	if perms == nil {
		perms = []string{}
	}
	writeData(w, perms)
}

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := users.Filter{Username: q.Get("username"), Email: q.Get("email")}
	if v := q.Get("status"); v != "" {
		st, err := strconv.Atoi(v)
		if err != nil {
			writeBusinessError(w, codeBadInput, "invalid status")
			return
		}
		f.Status = &st
	}

	pageNum, pageSize := max(queryInt(r, "pageNum"), 1), queryInt(r, "pageSize")
	if pageSize < 1 {
		pageSize = 10
	}

	list, total, err := s.users.List(r.Context(), f, pageNum, pageSize)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := page[userDTO]{List: make([]userDTO, 0, len(list)), Total: total, PageNum: pageNum, PageSize: pageSize}
	for i := range list {
		out.List = append(out.List, toUserDTO(&list[i]))
	}
	writeData(w, out)
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, toUserDTO(user))
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form userForm
	if !s.decodeForm(w, r, &form) {
		return
	}

	user := &users.User{
		UserName: form.Username,
		Email:    form.Email,
		Phone:    form.Phone,
		Avatar:   form.Avatar,
		Roles:    form.Roles,
	}
	created, err := s.users.Create(r.Context(), user, form.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Created user", "id", created.ID, "username", created.UserName)
	writeData(w, toUserDTO(created))
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var form userForm
	if !s.decodeForm(w, r, &form) {
		return
	}

	user, err := s.users.Update(r.Context(), chi.URLParam(r, "id"), users.Changes{
		UserName: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Phone:    form.Phone,
		Avatar:   form.Avatar,
		Roles:    form.Roles,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, toUserDTO(user))
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == userFromContext(r.Context()).ID {
		writeBusinessError(w, codeBadInput, "cannot delete yourself")
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, nil)
}

// BatchDeleteUsers removes every listed user; unknown ids are skipped.
func (s *Server) BatchDeleteUsers(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if !s.decodeForm(w, r, &req) {
		return
	}

	self := userFromContext(r.Context()).ID
	for _, id := range req.IDs {
		if id == self {
			continue
		}
		if err := s.users.Delete(r.Context(), id); err != nil && !errors.Is(err, common.ErrorNotFound) {
			s.writeServiceError(w, r, err)
			return
		}
	}
	writeData(w, nil)
}

func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBusinessError(w, codeBadInput, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeBusinessError(w, codeBadInput, "file too large")
		return
	}

	name, err := common.MakeRandHexString(8)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	name += strings.ToLower(path.Ext(header.Filename))

	if err := s.avatars.Put(r.Context(), name, http.DetectContentType(content), content); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeData(w, avatarUpload{URL: BasePath + "/avatars/" + name})
}

func (s *Server) Avatar(w http.ResponseWriter, r *http.Request) {
	content, contentType, err := s.avatars.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(content)
}
