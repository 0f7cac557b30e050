package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// CreateUserRequest registers an operator account
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Pin       string `json:"pin" validate:"required,min=4"`
	FullName  string `json:"fullName"`
	Superuser bool   `json:"superuser"`
}

// UpdateUserRequest rewrites an account's profile
type UpdateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	FullName    string `json:"fullName"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Active      *bool  `json:"active" validate:"required"`
	Superuser   bool   `json:"superuser"`
}

// UpdateRoleRequest rewrites a role
type UpdateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	Active      *bool  `json:"active" validate:"required"`
}

// SetPinRequest replaces an account PIN
type SetPinRequest struct {
	Pin string `json:"pin" validate:"required,min=4"`
}

// SetActiveRequest enables or disables an account
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// AssignRoleRequest links a user to a role
type AssignRoleRequest struct {
	RoleID int32 `json:"roleId" validate:"required"`
}

// CreateRoleRequest registers a role
type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

// GrantPermissionRequest links a permission to a role
type GrantPermissionRequest struct {
	PermissionID int32 `json:"permissionId" validate:"required"`
}

// CreatePermissionRequest registers a permission
type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (r *Router) listUsers(w http.ResponseWriter, req *http.Request) {
	users, err := r.authSvc.ListUsers()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (r *Router) createUser(w http.ResponseWriter, req *http.Request) {
	var createReq CreateUserRequest
	if err := json.NewDecoder(req.Body).Decode(&createReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(createReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := r.authSvc.CreateUser(createReq.Username, createReq.Pin, createReq.FullName, createReq.Superuser)
	if err != nil {
		respondError(w, http.StatusConflict, "Username already taken")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (r *Router) updateUser(w http.ResponseWriter, req *http.Request) {
	var updateReq UpdateUserRequest
	if err := json.NewDecoder(req.Body).Decode(&updateReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(updateReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := r.authSvc.UpdateUser(pathInt64(req, "id"),
		updateReq.Username, updateReq.FullName, updateReq.Email, updateReq.PhoneNumber,
		*updateReq.Active, updateReq.Superuser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (r *Router) deleteUser(w http.ResponseWriter, req *http.Request) {
	if err := r.authSvc.DeleteUser(pathInt64(req, "id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) setUserActive(w http.ResponseWriter, req *http.Request) {
	var activeReq SetActiveRequest
	if err := json.NewDecoder(req.Body).Decode(&activeReq); err != nil || activeReq.Active == nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.authSvc.SetUserActive(pathInt64(req, "id"), *activeReq.Active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"active": *activeReq.Active})
}

func (r *Router) setUserPin(w http.ResponseWriter, req *http.Request) {
	var pinReq SetPinRequest
	if err := json.NewDecoder(req.Body).Decode(&pinReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(pinReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.authSvc.SetUserPin(pathInt64(req, "id"), pinReq.Pin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (r *Router) assignRole(w http.ResponseWriter, req *http.Request) {
	var roleReq AssignRoleRequest
	if err := json.NewDecoder(req.Body).Decode(&roleReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(roleReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.authSvc.AssignRole(pathInt64(req, "id"), roleReq.RoleID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (r *Router) removeRole(w http.ResponseWriter, req *http.Request) {
	if err := r.authSvc.RemoveRole(pathInt64(req, "id"), pathInt32(req, "roleId")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (r *Router) listRoles(w http.ResponseWriter, req *http.Request) {
	roles, err := r.authSvc.ListRoles()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (r *Router) createRole(w http.ResponseWriter, req *http.Request) {
	var roleReq CreateRoleRequest
	if err := json.NewDecoder(req.Body).Decode(&roleReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(roleReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := r.authSvc.CreateRole(roleReq.Name, roleReq.Description)
	if err != nil {
		respondError(w, http.StatusConflict, "Role already exists")
		return
	}
	respondJSON(w, http.StatusCreated, role)
}

func (r *Router) updateRole(w http.ResponseWriter, req *http.Request) {
	var roleReq UpdateRoleRequest
	if err := json.NewDecoder(req.Body).Decode(&roleReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(roleReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := r.authSvc.UpdateRole(pathInt32(req, "id"), roleReq.Name, roleReq.Description, *roleReq.Active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Role not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, role)
}

func (r *Router) deleteRole(w http.ResponseWriter, req *http.Request) {
	if err := r.authSvc.DeleteRole(pathInt32(req, "id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Role not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) grantPermission(w http.ResponseWriter, req *http.Request) {
	var grantReq GrantPermissionRequest
	if err := json.NewDecoder(req.Body).Decode(&grantReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(grantReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.authSvc.GrantPermission(pathInt32(req, "id"), grantReq.PermissionID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func (r *Router) revokePermission(w http.ResponseWriter, req *http.Request) {
	if err := r.authSvc.RevokePermission(pathInt32(req, "id"), pathInt32(req, "permId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Grant not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func (r *Router) listPermissions(w http.ResponseWriter, req *http.Request) {
	permissions, err := r.authSvc.ListPermissions()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, permissions)
}

func (r *Router) createPermission(w http.ResponseWriter, req *http.Request) {
	var permReq CreatePermissionRequest
	if err := json.NewDecoder(req.Body).Decode(&permReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(permReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	perm, err := r.authSvc.CreatePermission(permReq.Name, permReq.Category, permReq.Description)
	if err != nil {
		respondError(w, http.StatusConflict, "Permission already exists")
		return
	}
	respondJSON(w, http.StatusCreated, perm)
}
