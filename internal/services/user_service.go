package services

import (
	"database/sql"
	"errors"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
)

type UserService struct {
	users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService {
	return &UserService{users: users}
}

// UserInput is the registration payload. Role is a role name and defaults
// to buyer when empty.
type UserInput struct {
	TelegramID int64
	Username   string
	Name       string
	Contact    string
	Role       string
}

func (s *UserService) Create(in UserInput) (domain.UserWithRole, error) {
	if _, err := s.users.ByTelegramID(in.TelegramID); err == nil {
		return domain.UserWithRole{}, apperr.New(apperr.Conflict, "User with this telegram_id already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	roleName := in.Role
	if roleName == "" {
		roleName = "buyer"
	}
	role, err := s.users.RoleByName(roleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserWithRole{}, apperr.New(apperr.NotFound, "Role not found")
		}
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	id, err := s.users.Insert(domain.User{
		TelegramID: in.TelegramID,
		Username:   in.Username,
		Name:       in.Name,
		Contact:    in.Contact,
		RoleID:     role.ID,
	})
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.UserWithRole{}, apperr.New(apperr.Conflict, "User with this telegram_id already exists")
		}
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return s.Get(id)
}

func (s *UserService) Get(id int64) (domain.UserWithRole, error) {
	u, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserWithRole{}, apperr.New(apperr.NotFound, "User not found")
		}
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	role, err := s.users.RoleByID(u.RoleID)
	if err != nil {
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return domain.UserWithRole{User: u, Role: role}, nil
}

// IDByTelegram maps a telegram identity to the internal user id.
func (s *UserService) IDByTelegram(telegramID int64) (int64, error) {
	u, err := s.users.ByTelegramID(telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.New(apperr.NotFound, "User not found")
		}
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return u.ID, nil
}

func (s *UserService) ExistsByTelegram(telegramID int64) (bool, error) {
	_, err := s.users.ByTelegramID(telegramID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, apperr.Wrap(apperr.Internal, "Internal server error", err)
}

func (s *UserService) Roles() ([]domain.Role, error) {
	roles, err := s.users.Roles()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	return roles, nil
}

func (s *UserService) CreateRole(name, description string) (domain.Role, error) {
	id, err := s.users.InsertRole(name, description)
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.Role{}, apperr.New(apperr.Conflict, "Role with this name already exists")
		}
		return domain.Role{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return s.users.RoleByID(id)
}

func (s *UserService) UpdateRole(userID, roleID int64) (domain.UserWithRole, error) {
	if _, err := s.users.RoleByID(roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserWithRole{}, apperr.New(apperr.NotFound, "Role not found")
		}
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	ok, err := s.users.Exists(userID)
	if err != nil {
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !ok {
		return domain.UserWithRole{}, apperr.New(apperr.NotFound, "User not found")
	}
	if err := s.users.SetRole(userID, roleID); err != nil {
		return domain.UserWithRole{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return s.Get(userID)
}
