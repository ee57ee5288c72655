package service

import (
	"context"
	"strings"
	"time"

	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/jwt"
	"github.com/hirelink/hirelink/internal/pkg/password"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a candidate or recruiter account. Admin accounts are
// provisioned out of band, never through the public endpoint.
func (s *AuthService) Register(ctx context.Context, email, plainPassword, role, fullName string) (*model.User, string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = model.RoleCandidate
	}
	if role != model.RoleCandidate && role != model.RoleRecruiter {
		return nil, "", appErr.ErrInvalid
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		FullName:     strings.TrimSpace(fullName),
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, oldPassword); err != nil {
		return appErr.ErrUnauthorized
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, timeutil.NowUnix())
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ProfileUpdate carries optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName         *string
	Phone            *string
	Headline         *string
	Location         *string
	Bio              *string
	Skills           *string
	ExperienceLevel  *string
	PreferredJobType *string
	RemotePreference *string
	DesiredSalary    *float64
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*model.User, error) {
	update := map[string]interface{}{}
	setStr := func(column string, v *string) {
		if v != nil {
			update[column] = strings.TrimSpace(*v)
		}
	}
	setStr("full_name", upd.FullName)
	setStr("phone", upd.Phone)
	setStr("headline", upd.Headline)
	setStr("location", upd.Location)
	setStr("bio", upd.Bio)
	setStr("skills", upd.Skills)
	setStr("experience_level", upd.ExperienceLevel)
	setStr("preferred_job_type", upd.PreferredJobType)
	setStr("remote_preference", upd.RemotePreference)
	if upd.DesiredSalary != nil {
		update["desired_salary"] = *upd.DesiredSalary
	}
	if len(update) > 0 {
		update["mtime"] = timeutil.NowUnix()
		if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, userID)
}
