package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"github.com/openmapcollab/mapping-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmptyPayload  = errors.New("no data provided")
	ErrInvalidField  = errors.New("invalid field value")
	ErrInvalidRole   = errors.New("invalid role")
)

// userUpdateColumns maps updatable JSON field names to their columns.
// Anything outside this list never reaches the query, including the
// immutable id, username and registration timestamp.
var userUpdateColumns = map[string]string{
	"role":              "role",
	"profile_img":       "profile_img",
	"name":              "name",
	"city":              "city",
	"country":           "country",
	"email_address":     "email_address",
	"is_email_verified": "is_email_verified",
	"is_expert":         "is_expert",
}

// UserService handles user business logic, including project-role
// resolution and the inactivity sweep.
type UserService struct {
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	orgRepo       repository.OrganisationRepository
	inactiveAfter time.Duration
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	orgRepo repository.OrganisationRepository,
	inactiveDays int,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		orgRepo:       orgRepo,
		inactiveAfter: time.Duration(inactiveDays) * 24 * time.Hour,
	}
}

// CreateUserInput represents input for registering a user. The ID is
// supplied by the client (normally the OSM ID).
type CreateUserInput struct {
	ID              int64
	Username        string
	Role            models.Role
	ProfileImg      *string
	Name            *string
	City            *string
	Country         *string
	EmailAddress    *string
	IsEmailVerified bool
	IsExpert        bool
}

// Create registers a new user and returns the generated plaintext API
// key alongside the record. In strict mode a duplicate username is a
// conflict; with ignoreConflict the mutable registration fields are
// refreshed instead.
func (s *UserService) Create(input CreateUserInput, ignoreConflict bool) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	if input.ID == 0 || username == "" {
		return nil, "", ErrEmptyPayload
	}

	role := input.Role
	if role == "" {
		role = models.RoleMapper
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	if !ignoreConflict {
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			return nil, "", fmt.Errorf("%w: %s", ErrUsernameTaken, username)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("failed to check username: %w", err)
		}
	}

	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate API key: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash API key: %w", err)
	}

	user := &models.User{
		ID:              input.ID,
		Username:        username,
		Role:            role,
		ProfileImg:      input.ProfileImg,
		Name:            input.Name,
		City:            input.City,
		Country:         input.Country,
		EmailAddress:    input.EmailAddress,
		IsEmailVerified: input.IsEmailVerified,
		IsExpert:        input.IsExpert,
		APIKeyHash:      string(hash),
	}

	if ignoreConflict {
		err = s.userRepo.Upsert(user)
	} else {
		err = s.userRepo.Create(user)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	return user, apiKey, nil
}

// Get returns a user by identifier. A numeric identifier is an exact ID
// lookup; anything else falls back to a case-insensitive username
// prefix match. Derived project roles and managed organisations are
// included.
func (s *UserService) Get(identifier string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if id, convErr := strconv.ParseInt(identifier, 10, 64); convErr == nil {
		user, err = s.userRepo.FindByID(id)
	} else {
		user, err = s.userRepo.FindByUsernamePrefix(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, identifier)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.resolveDerived(user); err != nil {
		return nil, err
	}
	return user, nil
}

// resolveDerived attaches the project-role mapping and managed
// organisation IDs to the user record.
func (s *UserService) resolveDerived(user *models.User) error {
	roles, err := s.roleRepo.ListByUser(user.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve project roles: %w", err)
	}

	mapping := make(map[uuid.UUID]models.ProjectRole, len(roles))
	for _, row := range roles {
		role := row.Role
		if role == "" {
			// Association without an explicit role defaults to MAPPER
			role = models.ProjectRoleMapper
		}
		mapping[row.ProjectID] = role
	}
	user.ProjectRoles = mapping

	orgs, err := s.orgRepo.ListManagedIDs(user.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve managed organisations: %w", err)
	}
	user.OrgsManaged = orgs

	return nil
}

// List returns users matching the filter plus the total matching count
func (s *UserService) List(filter repository.ListFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Usernames returns the unpaginated id/username listing
func (s *UserService) Usernames(search string) ([]models.User, error) {
	users, _, err := s.userRepo.List(repository.ListFilter{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	return users, nil
}

// Update applies the fields present in raw to the user. Absent fields
// are left untouched; fields provided as null are applied. An empty
// payload is rejected before any storage call.
func (s *UserService) Update(id int64, raw map[string]any) (*models.User, error) {
	columns := make(map[string]any)
	for field, value := range raw {
		column, ok := userUpdateColumns[field]
		if !ok {
			continue
		}

		switch field {
		case "role":
			str, ok := value.(string)
			if !ok || !models.Role(str).Valid() {
				return nil, fmt.Errorf("%w: %v", ErrInvalidRole, value)
			}
			value = models.Role(str)
		case "is_email_verified", "is_expert":
			if _, ok := value.(bool); !ok {
				return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidField, field)
			}
		}

		columns[column] = value
	}

	if len(columns) == 0 {
		return nil, ErrEmptyPayload
	}

	affected, err := s.userRepo.Update(id, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

// Delete removes a user and their role rows
func (s *UserService) Delete(id int64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Printf("User %d deleted successfully", id)
	return nil
}

// ProcessInactiveUsers deletes accounts whose last login predates the
// configured inactivity threshold. A failed delete is logged and
// skipped so one bad account cannot block the rest of the sweep.
// Returns the number of accounts removed.
func (s *UserService) ProcessInactiveUsers(now time.Time) (int, error) {
	cutoff := now.Add(-s.inactiveAfter)

	users, err := s.userRepo.ListInactiveSince(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find inactive users: %w", err)
	}

	deleted := 0
	for _, user := range users {
		if _, err := s.userRepo.Delete(user.ID); err != nil {
			log.Printf("Failed to delete inactive user %s (id %d): %v", user.Username, user.ID, err)
			continue
		}
		log.Printf("Deleted user %s (id %d) due to inactivity", user.Username, user.ID)
		deleted++
	}

	return deleted, nil
}
