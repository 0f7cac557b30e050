package auth

import (
	"errors"
	"log"
	"time"

	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/models"
	"github.com/packline/packtrace/internal/utils"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers every authentication failure: unknown
// username, wrong PIN and deactivated account all report identically so
// the response does not leak which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service performs credential lookups and account administration
type Service struct {
	db *database.DB
}

// NewService creates the auth service on the shared connection
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Authenticate matches a username and a client-computed PIN hash against
// the active accounts and returns the user with active roles and the
// deduplicated set of granted permissions.
func (s *Service) Authenticate(username, pinHash string) (*models.AuthenticatedUser, error) {
	if err := s.db.Alive(); err != nil {
		return nil, err
	}
	var user models.User
	err := s.db.
		Where("username = ? AND LOWER(pin_hash) = LOWER(?) AND active = ?", username, pinHash, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("⚠️ Failed to record last login for %s: %v", user.Username, err)
	}
	user.LastLogin = &now

	roles, err := s.userRoles(user.ID)
	if err != nil {
		return nil, err
	}
	permissions, err := s.userPermissions(user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Authenticated %s (%d roles, %d permissions)", user.Username, len(roles), len(permissions))
	return &models.AuthenticatedUser{
		User:        user,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

func (s *Service) userRoles(userID int64) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ? AND roles.active = ?", userID, true).
		Order("roles.role_name").
		Find(&roles).Error
	return roles, err
}

func (s *Service) userPermissions(userID int64) ([]models.Permission, error) {
	var permissions []models.Permission
	err := s.db.
		Distinct("permissions.*").
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Joins("JOIN roles r ON r.id = ur.role_id").
		Where("ur.user_id = ? AND rp.granted = ? AND r.active = ? AND permissions.active = ?",
			userID, true, true, true).
		Find(&permissions).Error
	return permissions, err
}

// CreateUser registers an account. The PIN is hashed server-side here;
// scanners hash it themselves at login time.
func (s *Service) CreateUser(username, pin, fullName string, superuser bool) (*models.User, error) {
	user := &models.User{
		Username:  username,
		PinHash:   utils.HashPin(pin),
		FullName:  fullName,
		Active:    true,
		Superuser: superuser,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser rewrites an account's profile fields. The PIN hash is not
// touched here; SetUserPin handles that separately.
func (s *Service) UpdateUser(userID int64, username, fullName, email, phone string, active, superuser bool) (*models.User, error) {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"username":     username,
		"full_name":    fullName,
		"email":        email,
		"phone_number": phone,
		"active":       active,
		"superuser":    superuser,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account and its role assignments
func (s *Service) DeleteUser(userID int64) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
		return err
	}
	res := s.db.Delete(&models.User{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetUserActive enables or disables an account without deleting it
func (s *Service) SetUserActive(userID int64, active bool) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetUserPin replaces the stored PIN hash
func (s *Service) SetUserPin(userID int64, pin string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("pin_hash", utils.HashPin(pin))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateRole registers a role
func (s *Service) CreateRole(name, description string) (*models.Role, error) {
	role := &models.Role{Name: name, Description: description, Active: true}
	if err := s.db.Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// UpdateRole rewrites a role's name, description and active flag
func (s *Service) UpdateRole(roleID int32, name, description string, active bool) (*models.Role, error) {
	res := s.db.Model(&models.Role{}).Where("id = ?", roleID).Updates(map[string]interface{}{
		"role_name":   name,
		"description": description,
		"active":      active,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole removes a role together with its grants and assignments
func (s *Service) DeleteRole(roleID int32) error {
	if err := s.db.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("role_id = ?", roleID).Delete(&models.UserRole{}).Error; err != nil {
		return err
	}
	res := s.db.Delete(&models.Role{}, roleID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreatePermission registers a permission
func (s *Service) CreatePermission(name, category, description string) (*models.Permission, error) {
	perm := &models.Permission{Name: name, Category: category, Description: description, Active: true}
	if err := s.db.Create(perm).Error; err != nil {
		return nil, err
	}
	return perm, nil
}

// AssignRole links a user to a role; repeating the assignment is a no-op
func (s *Service) AssignRole(userID int64, roleID int32) error {
	return s.db.Exec(
		"INSERT INTO user_roles (user_id, role_id) VALUES (?, ?) "+
			"ON CONFLICT (user_id, role_id) DO NOTHING",
		userID, roleID).Error
}

// RemoveRole unlinks a user from a role
func (s *Service) RemoveRole(userID int64, roleID int32) error {
	return s.db.
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.UserRole{}).Error
}

// GrantPermission links a permission to a role. A previously revoked
// grant is re-enabled rather than duplicated.
func (s *Service) GrantPermission(roleID, permissionID int32) error {
	return s.db.Exec(
		"INSERT INTO role_permissions (role_id, permission_id, granted) VALUES (?, ?, true) "+
			"ON CONFLICT (role_id, permission_id) DO UPDATE SET granted = true",
		roleID, permissionID).Error
}

// RevokePermission flips the grant off but keeps the row for auditability
func (s *Service) RevokePermission(roleID, permissionID int32) error {
	res := s.db.Model(&models.RolePermission{}).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Update("granted", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListUsers returns every account, active or not
func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("username").Find(&users).Error
	return users, err
}

// ListRoles returns every role
func (s *Service) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	err := s.db.Order("role_name").Find(&roles).Error
	return roles, err
}

// ListPermissions returns every permission grouped by category
func (s *Service) ListPermissions() ([]models.Permission, error) {
	var permissions []models.Permission
	err := s.db.Order("category, permission_name").Find(&permissions).Error
	return permissions, err
}
