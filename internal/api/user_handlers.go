package api

import (
	"fmt"
	"net/http"
	"time"

	"notig/internal/auth"
	"notig/internal/models"
)

// UserResponse is the public view of an account. The password hash is never
// exposed.
type UserResponse struct {
	Status    string     `json:"status" example:"ok"`
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	UserID          flexID `json:"userId" swaggertype:"integer"`
	CurrentPassword string `json:"currentPassword"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
}

type DeleteProfileRequest struct {
	UserID          flexID `json:"userId" swaggertype:"integer"`
	CurrentPassword string `json:"currentPassword"`
}

// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any  "user not found"
// @Router       /user/{id} [get]
func (s *Server) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.authorize(r, id); err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.store.GetUserByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if user == nil {
		s.fail(w, r, errUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Status:    statusOK,
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// verifyAccount loads the user and checks the current password, shared by the
// profile update and delete flows.
func (s *Server) verifyAccount(r *http.Request, userID int64, currentPassword string) (*models.User, error) {
	if err := s.authorize(r, userID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return nil, errWrongPassword
	}
	return user, nil
}

// @Summary      Update profile
// @Description  Re-writes username, email and password hash, keeping the current value for any field left empty. Requires the current password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        updateProfileRequest  body      UpdateProfileRequest  true  "Profile changes"
// @Success      200                   {object}  map[string]any
// @Failure      400                   {object}  map[string]any  "missing fields, email in use or username in use"
// @Failure      401                   {object}  map[string]any  "wrong password"
// @Failure      404                   {object}  map[string]any  "user not found"
// @Router       /user/update [put]
func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.UserID <= 0 || req.CurrentPassword == "" {
		s.fail(w, r, errMissingFields)
		return
	}

	user, err := s.verifyAccount(r, int64(req.UserID), req.CurrentPassword)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	username := user.Username
	if req.Username != "" && req.Username != user.Username {
		taken, err := s.store.GetUserByUsername(r.Context(), req.Username)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if taken != nil && taken.ID != user.ID {
			s.fail(w, r, errUsernameInUse)
			return
		}
		username = req.Username
	}

	email := user.Email
	if req.Email != "" && req.Email != user.Email {
		taken, err := s.store.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if taken != nil && taken.ID != user.ID {
			s.fail(w, r, errEmailInUse)
			return
		}
		email = req.Email
	}

	passwordHash := user.PasswordHash
	if req.NewPassword != "" {
		passwordHash, err = auth.HashPassword(req.NewPassword)
		if err != nil {
			s.fail(w, r, fmt.Errorf("hash password: %w", err))
			return
		}
	}

	if err := s.store.UpdateUser(r.Context(), user.ID, username, email, passwordHash); err != nil {
		s.fail(w, r, translateUserConflict(err))
		return
	}

	writeJSON(w, http.StatusOK, envelope{"status": statusSuccess})
}

// @Summary      Delete profile
// @Description  Deletes the account and all of its notes. Requires the current password.
// @Tags         users
// @Accept       json
// @Param        deleteProfileRequest  body  DeleteProfileRequest  true  "Account to delete"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any  "wrong password"
// @Failure      404  {object}  map[string]any  "user not found"
// @Router       /user/delete [post]
func (s *Server) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req DeleteProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.UserID <= 0 || req.CurrentPassword == "" {
		s.fail(w, r, errMissingFields)
		return
	}

	user, err := s.verifyAccount(r, int64(req.UserID), req.CurrentPassword)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.store.DeleteAccount(r.Context(), user.ID); err != nil {
		s.fail(w, r, fmt.Errorf("delete account %d: %w", user.ID, err))
		return
	}

	s.logger.Infow("account deleted", "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}
