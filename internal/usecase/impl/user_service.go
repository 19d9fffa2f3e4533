// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"
	"bazaar/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new end-user account and opens a session for it.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.UserAuthOutput, error) {
	srv.log(ctx).Info("Registering user", slog.String("email", input.Email))

	newUser := &entity.User{
		Name:                  input.Name,
		Email:                 input.Email,
		Age:                   input.Age,
		City:                  input.City,
		Interests:             input.Interests,
		AllowsReceivingOffers: input.AllowsReceivingOffers,
		Role:                  entity.RoleUser,
	}

	return srv.createAndAuthenticate(ctx, newUser, input.Password)
}

// RegisterAdmin creates an account through the privileged path. The
// caller-supplied shape is trusted as-is, including the role, which
// defaults to admin when unset.
func (srv *userService) RegisterAdmin(ctx context.Context, input *usecase.RegisterAdminInput) (*usecase.UserAuthOutput, error) {
	srv.log(ctx).Info("Registering admin", slog.String("email", input.Email))

	role := input.Role
	if role == "" {
		role = entity.RoleAdmin
	}

	newAdmin := &entity.User{
		Name:                  input.Name,
		Email:                 input.Email,
		Age:                   input.Age,
		City:                  input.City,
		Interests:             input.Interests,
		AllowsReceivingOffers: input.AllowsReceivingOffers,
		Role:                  role,
	}

	return srv.createAndAuthenticate(ctx, newAdmin, input.Password)
}

func (srv *userService) createAndAuthenticate(ctx context.Context, newUser *entity.User, password string) (*usecase.UserAuthOutput, error) {
	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}
	newUser.PasswordHash = hashedPassword

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, srv.mapUserError(err, "failed to create user")
	}

	token, err := srv.tokenService.Issue(newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("User registered", slog.String("userID", newUser.ID))

	return &usecase.UserAuthOutput{Token: token, User: newUser.Scrub()}, nil
}

// Login verifies the credentials and opens a session for the user.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.UserAuthOutput, error) {
	srv.log(ctx).Debug("User login attempt", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, srv.mapUserError(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.UserAuthOutput{Token: token, User: user.Scrub()}, nil
}

// Get returns the scrubbed user with the given id.
func (srv *userService) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapUserError(err, "failed to load user")
	}

	return user.Scrub(), nil
}

// List returns all live users, scrubbed.
func (srv *userService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, srv.mapUserError(err, "failed to list users")
	}

	for _, user := range users {
		user.Scrub()
	}

	return users, nil
}

// ListTargets returns the marketing-target projection of live, opted-in,
// non-admin users matching at least one of the filters.
func (srv *userService) ListTargets(ctx context.Context, input *usecase.ListTargetsInput) ([]*usecase.MarketingTarget, error) {
	if input.City == "" && len(input.Interests) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one of city or interests is required")
	}

	users, err := srv.userRepo.FindTargets(ctx, repository.TargetFilter{
		City:      input.City,
		Interests: input.Interests,
	})
	if err != nil {
		return nil, srv.mapUserError(err, "failed to query marketing targets")
	}

	targets := make([]*usecase.MarketingTarget, 0, len(users))
	for _, user := range users {
		targets = append(targets, &usecase.MarketingTarget{Name: user.Name, Email: user.Email})
	}

	return targets, nil
}

// Replace overwrites the full mutable state of the user. An empty
// password keeps the stored digest.
func (srv *userService) Replace(ctx context.Context, id string, input *usecase.ReplaceUserInput) (*entity.User, error) {
	current, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapUserError(err, "failed to load user for replace")
	}

	passwordHash := current.PasswordHash
	if input.Password != "" {
		passwordHash, err = srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password during replace")
		}
	}

	updated := &entity.User{
		ID:                    id,
		Name:                  input.Name,
		Email:                 input.Email,
		PasswordHash:          passwordHash,
		Age:                   input.Age,
		City:                  input.City,
		Interests:             input.Interests,
		AllowsReceivingOffers: input.AllowsReceivingOffers,
		Role:                  input.Role,
	}

	result, err := srv.userRepo.Replace(ctx, updated)
	if err != nil {
		return nil, srv.mapUserError(err, "failed to replace user")
	}

	srv.log(ctx).Debug("User replaced", slog.String("userID", id))

	return result.Scrub(), nil
}

// Patch applies the set fields of the input to the user. A set password
// is re-hashed before it reaches the repository.
func (srv *userService) Patch(ctx context.Context, id string, input *usecase.PatchUserInput) (*entity.User, error) {
	patch := repository.UserPatch{
		Name:                  input.Name,
		Email:                 input.Email,
		Age:                   input.Age,
		City:                  input.City,
		Interests:             input.Interests,
		AllowsReceivingOffers: input.AllowsReceivingOffers,
		Role:                  input.Role,
	}

	if input.Password != nil {
		hashedPassword, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password during patch")
		}
		patch.Password = &hashedPassword
	}

	result, err := srv.userRepo.Patch(ctx, id, patch)
	if err != nil {
		return nil, srv.mapUserError(err, "failed to patch user")
	}

	srv.log(ctx).Debug("User patched", slog.String("userID", id))

	return result.Scrub(), nil
}

// Delete removes the user: flagged by default, physical when permanent.
func (srv *userService) Delete(ctx context.Context, id string, permanent bool) error {
	var err error
	if permanent {
		err = srv.userRepo.HardDelete(ctx, id)
	} else {
		err = srv.userRepo.SoftDelete(ctx, id)
	}
	if err != nil {
		return srv.mapUserError(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id), slog.Bool("permanent", permanent))

	return nil
}

// mapUserError converts repository sentinels into domain errors and wraps
// everything else for the generic 500 path.
func (srv *userService) mapUserError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return domainerrors.ErrUserNotFound.WrapMessage(message)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ErrEmailTaken.WrapMessage(message)
	default:
		return errors.Wrap(err, message)
	}
}
