package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chaiteam/chaiteam-backend/internal/activity"
	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrAlreadyInGroup      = errors.New("user already belongs to a group")
	ErrAlreadyApplied      = errors.New("user already has a pending application")
	ErrApplicationNotFound = errors.New("application not found")
	ErrGroupFull           = errors.New("group is full")
	ErrGroupNotEmpty       = errors.New("all members must be removed before disbanding")
	ErrLeaderCannotLeave   = errors.New("the leader cannot leave; disband the group instead")
	ErrCannotKickSelf      = errors.New("the leader cannot kick themself")
	ErrCannotKickLeader    = errors.New("the group leader cannot be kicked")
	ErrMemberNotFound      = errors.New("user is not a member of this group")
	ErrNotGroupLeader      = errors.New("only the group leader or an admin may do this")
)

// GroupService is the membership invariant engine. Every mutating
// operation runs inside a single transaction; the unique index on
// group_members.user_id and the partial unique index on pending
// applications are the authoritative guards against check-then-act races,
// with the in-transaction pre-checks serving as fast paths.
type GroupService struct {
	db       *gorm.DB
	recorder *activity.Recorder
	maxSize  int
}

func NewGroupService(db *gorm.DB, recorder *activity.Recorder, maxSize int) *GroupService {
	return &GroupService{db: db, recorder: recorder, maxSize: maxSize}
}

// CreateGroup creates a group in the given batch with the actor as its
// only member and leader. The batch has already been resolved and
// validated by the batch middleware.
func (s *GroupService) CreateGroup(actor Identity, req *dto.CreateGroupRequest, batch *models.Batch) (*models.Group, error) {
	tags, err := json.Marshal(req.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	var created models.Group
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var memberships int64
		if err := tx.Model(&models.GroupMember{}).Where("user_id = ?", actor.ID).Count(&memberships).Error; err != nil {
			return err
		}
		if memberships > 0 {
			return ErrAlreadyInGroup
		}

		group := models.Group{
			ID:          uuid.New(),
			Name:        req.Name,
			Description: req.Description,
			Tags:        datatypes.JSON(tags),
			BatchID:     batch.ID,
			BatchName:   batch.Name,
			MemberCount: 1,
			LeaderID:    actor.ID,
			Status:      models.GroupStatusActive,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		leader := models.GroupMember{
			ID:      uuid.New(),
			UserID:  actor.ID,
			GroupID: group.ID,
			Role:    models.GroupRoleLeader,
			Name:    actor.Name,
			Email:   actor.Email,
		}
		if err := tx.Create(&leader).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyInGroup
			}
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", actor.ID).Update("is_in_group", true).Error; err != nil {
			return err
		}

		group.Members = []models.GroupMember{leader}
		created = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.User(actor.ID, models.ActionCreatedGroup,
		fmt.Sprintf("%s created group %q in batch %q", actor.Name, created.Name, created.BatchName))
	s.recorder.Group(created.ID, models.ActionGroupCreated,
		fmt.Sprintf("Group %q created by %s", created.Name, actor.Name))
	return &created, nil
}

// ApplyToJoin files a pending join application for the actor.
func (s *GroupService) ApplyToJoin(actor Identity, groupID uuid.UUID, reason string) (*models.JoinApplication, error) {
	var created models.JoinApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		var memberships int64
		if err := tx.Model(&models.GroupMember{}).Where("user_id = ?", actor.ID).Count(&memberships).Error; err != nil {
			return err
		}
		if memberships > 0 {
			return ErrAlreadyInGroup
		}

		var pending int64
		if err := tx.Model(&models.JoinApplication{}).
			Where("user_id = ? AND status = ?", actor.ID, models.ApplicationStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrAlreadyApplied
		}

		app := models.JoinApplication{
			ID:        uuid.New(),
			UserID:    actor.ID,
			GroupID:   group.ID,
			GroupName: group.Name,
			Name:      actor.Name,
			Email:     actor.Email,
			Reason:    reason,
			Status:    models.ApplicationStatusPending,
		}
		if err := tx.Create(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyApplied
			}
			return err
		}

		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.User(actor.ID, models.ActionAppliedToJoinGroup,
		fmt.Sprintf("%s applied to join group %q", actor.Name, created.GroupName))
	return &created, nil
}

// AddMember approves a pending application and admits the applicant.
// Only the group leader or an admin may call it. Single-membership is
// re-validated here because time may have passed since the application
// was filed.
func (s *GroupService) AddMember(actor Identity, groupID, userID uuid.UUID) (*models.GroupMember, error) {
	var (
		admitted models.GroupMember
		group    models.Group
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if !actor.IsAdmin() && group.LeaderID != actor.ID {
			return ErrNotGroupLeader
		}

		var app models.JoinApplication
		if err := tx.Where("user_id = ? AND group_id = ? AND status = ?",
			userID, groupID, models.ApplicationStatusPending).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		var memberships int64
		if err := tx.Model(&models.GroupMember{}).Where("user_id = ?", userID).Count(&memberships).Error; err != nil {
			return err
		}
		if memberships > 0 {
			return ErrAlreadyInGroup
		}

		// Conditional increment is the capacity gate: concurrent approves
		// serialize on the group row and the loser sees zero rows updated.
		res := tx.Model(&models.Group{}).
			Where("id = ? AND member_count < ?", groupID, s.maxSize).
			Update("member_count", gorm.Expr("member_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGroupFull
		}

		member := models.GroupMember{
			ID:      uuid.New(),
			UserID:  app.UserID,
			GroupID: group.ID,
			Role:    models.GroupRoleMember,
			Name:    app.Name,
			Email:   app.Email,
		}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyInGroup
			}
			return err
		}

		if err := tx.Model(&app).Update("status", models.ApplicationStatusApproved).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", app.UserID).Update("is_in_group", true).Error; err != nil {
			return err
		}

		admitted = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.User(admitted.UserID, models.ActionJoinedGroup,
		fmt.Sprintf("%s joined group %q", admitted.Name, group.Name))
	s.recorder.Group(group.ID, models.ActionMemberJoined,
		fmt.Sprintf("%s was added to the group by %s", admitted.Name, actor.Name))
	return &admitted, nil
}

// RejectApplication moves a pending application to REJECTED. Rejecting an
// application that is not pending reports not-found rather than silently
// succeeding.
func (s *GroupService) RejectApplication(actor Identity, groupID, userID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	if !actor.IsAdmin() && group.LeaderID != actor.ID {
		return ErrNotGroupLeader
	}

	res := s.db.Model(&models.JoinApplication{}).
		Where("user_id = ? AND group_id = ? AND status = ?",
			userID, groupID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}

	s.recorder.User(userID, models.ActionApplicationRejected,
		fmt.Sprintf("Application to group %q was rejected", group.Name))
	return nil
}

// LeaveGroup removes the actor from the group. Leaders must disband
// instead of leaving.
func (s *GroupService) LeaveGroup(actor Identity, groupID uuid.UUID, reason string) error {
	var group models.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		var member models.GroupMember
		if err := tx.Where("group_id = ? AND user_id = ?", groupID, actor.ID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if member.Role == models.GroupRoleLeader {
			return ErrLeaderCannotLeave
		}

		return s.removeMember(tx, &member)
	})
	if err != nil {
		return err
	}

	s.recorder.User(actor.ID, models.ActionLeftGroup,
		fmt.Sprintf("%s left group %q: %s", actor.Name, group.Name, reason))
	s.recorder.Group(group.ID, models.ActionMemberLeft,
		fmt.Sprintf("%s left the group: %s", actor.Name, reason))
	return nil
}

// KickMember removes a member on the leader's (or an admin's) authority.
func (s *GroupService) KickMember(actor Identity, groupID, userID uuid.UUID, reason string) error {
	var (
		group  models.Group
		member models.GroupMember
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if !actor.IsAdmin() && group.LeaderID != actor.ID {
			return ErrNotGroupLeader
		}
		if userID == actor.ID {
			return ErrCannotKickSelf
		}

		if err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if member.Role == models.GroupRoleLeader {
			return ErrCannotKickLeader
		}

		return s.removeMember(tx, &member)
	})
	if err != nil {
		return err
	}

	s.recorder.User(member.UserID, models.ActionKickedFromGroup,
		fmt.Sprintf("%s was removed from group %q by %s: %s", member.Name, group.Name, actor.Name, reason))
	s.recorder.Group(group.ID, models.ActionMemberKicked,
		fmt.Sprintf("%s was removed by %s: %s", member.Name, actor.Name, reason))
	return nil
}

// removeMember deletes one member row, decrements the group counter and
// clears the user's membership flag, all on the caller's transaction.
func (s *GroupService) removeMember(tx *gorm.DB, member *models.GroupMember) error {
	if err := tx.Delete(member).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Group{}).Where("id = ?", member.GroupID).
		Update("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", member.UserID).Update("is_in_group", false).Error
}

// DisbandGroup hard-deletes a group that only its leader still inhabits.
func (s *GroupService) DisbandGroup(actor Identity, groupID uuid.UUID) error {
	var group models.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if !actor.IsAdmin() && group.LeaderID != actor.ID {
			return ErrNotGroupLeader
		}

		// The member_count condition re-checks emptiness at delete time so
		// a concurrent approve cannot slip a member into a dying group.
		res := tx.Where("id = ? AND member_count = 1", groupID).Delete(&models.Group{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGroupNotEmpty
		}

		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", group.LeaderID).Update("is_in_group", false).Error
	})
	if err != nil {
		return err
	}

	s.recorder.User(group.LeaderID, models.ActionDisbandedGroup,
		fmt.Sprintf("%s disbanded group %q", actor.Name, group.Name))
	return nil
}

// UpdateGroup changes a group's descriptive fields. No membership impact.
func (s *GroupService) UpdateGroup(actor Identity, groupID uuid.UUID, req *dto.UpdateGroupRequest) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && group.LeaderID != actor.ID {
		return nil, ErrNotGroupLeader
	}

	tags, err := json.Marshal(req.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"tags":        datatypes.JSON(tags),
		"status":      req.Status,
	}
	if err := s.db.Model(&group).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.recorder.Group(group.ID, models.ActionGroupUpdated,
		fmt.Sprintf("Group settings updated by %s", actor.Name))
	return &group, nil
}

// GetGroupByID returns a group with its member list.
func (s *GroupService) GetGroupByID(groupID uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := s.db.Preload("Members").First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// ListGroups returns groups, optionally filtered by batch.
func (s *GroupService) ListGroups(batchID *uuid.UUID) ([]models.Group, error) {
	q := s.db.Preload("Members").Order("created_at DESC")
	if batchID != nil {
		q = q.Where("batch_id = ?", *batchID)
	}
	var groups []models.Group
	if err := q.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetMyGroup returns the group the user currently belongs to.
func (s *GroupService) GetMyGroup(userID uuid.UUID) (*models.Group, error) {
	var member models.GroupMember
	if err := s.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return s.GetGroupByID(member.GroupID)
}

// ListGroupApplications returns a group's pending applications for its
// leader or an admin.
func (s *GroupService) ListGroupApplications(actor Identity, groupID uuid.UUID) ([]models.JoinApplication, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && group.LeaderID != actor.ID {
		return nil, ErrNotGroupLeader
	}

	var apps []models.JoinApplication
	err := s.db.Where("group_id = ? AND status = ?", groupID, models.ApplicationStatusPending).
		Order("created_at ASC").Find(&apps).Error
	return apps, err
}

// ListUserApplications returns the user's full application history,
// newest first.
func (s *GroupService) ListUserApplications(userID uuid.UUID) ([]models.JoinApplication, error) {
	var apps []models.JoinApplication
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

// WithdrawApplication deletes the actor's own pending application.
func (s *GroupService) WithdrawApplication(actor Identity) error {
	res := s.db.Where("user_id = ? AND status = ?", actor.ID, models.ApplicationStatusPending).
		Delete(&models.JoinApplication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
