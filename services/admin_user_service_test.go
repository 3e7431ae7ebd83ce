package services

import (
	"fmt"
	"testing"

	"visionguide-http-service/config"
	"visionguide-http-service/models"
	"visionguide-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为单个测试创建独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AdminUser{},
		&models.Individual{},
		&models.ActivityLog{},
		&models.GuidanceLog{},
	))
	return db
}

// seedAdmin 直接写入一个管理员账号，密码以bcrypt哈希存储
func seedAdmin(t *testing.T, db *gorm.DB, username, password, role string) *models.AdminUser {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	admin := &models.AdminUser{Username: username, Password: hashed, Role: role}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func countActivityLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&count).Error)
	return count
}

func newAdminService(t *testing.T) (InterfaceAdminUserService, *gorm.DB) {
	db := newTestDB(t)
	return NewAdminUserService(db, &config.Config{}), db
}

// 用户名不存在和密码错误必须返回同一个错误
func TestAuthenticateAdmin(t *testing.T) {
	svc, db := newAdminService(t)
	seedAdmin(t, db, "alice", "secret", models.RoleSuperAdmin)

	admin, err := svc.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", admin.Username)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)

	_, err = svc.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdminWritesAudit(t *testing.T) {
	svc, db := newAdminService(t)

	admin, err := svc.CreateAdmin("alice", "bob", "bobpass")
	require.NoError(t, err)
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// 密码必须以哈希存储
	var stored models.AdminUser
	require.NoError(t, db.Where("id = ?", admin.ID).First(&stored).Error)
	assert.NotEqual(t, "bobpass", stored.Password)
	assert.True(t, utils.CheckPasswordHash("bobpass", stored.Password))

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "alice", logs[0].Admin)
	assert.Equal(t, "add_admin: Added new admin: bob", logs[0].Action)
	assert.Equal(t, admin.ID, logs[0].TargetUID)
	assert.Equal(t, models.TargetRoleAdmin, logs[0].TargetRole)
}

// 用户名冲突时既不能写入账号也不能留下审计记录
func TestCreateAdminDuplicateUsername(t *testing.T) {
	svc, db := newAdminService(t)
	seedAdmin(t, db, "bob", "pass", models.RoleAdmin)

	_, err := svc.CreateAdmin("alice", "bob", "otherpass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var count int64
	require.NoError(t, db.Model(&models.AdminUser{}).Where("username = ?", "bob").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(0), countActivityLogs(t, db))
}

func TestCreateAdminEmptyUsername(t *testing.T) {
	svc, db := newAdminService(t)

	_, err := svc.CreateAdmin("alice", "", "pass")
	assert.ErrorIs(t, err, ErrUsernameRequired)
	assert.Equal(t, int64(0), countActivityLogs(t, db))
}

// 空密码表示保持不变，角色不经由编辑入口修改
func TestUpdateAdminKeepsPasswordAndRole(t *testing.T) {
	svc, db := newAdminService(t)
	bob := seedAdmin(t, db, "bob", "bobpass", models.RoleSuperAdmin)
	oldHash := bob.Password

	_, err := svc.UpdateAdmin("alice", bob.ID, "robert", "")
	require.NoError(t, err)

	var stored models.AdminUser
	require.NoError(t, db.Where("id = ?", bob.ID).First(&stored).Error)
	assert.Equal(t, "robert", stored.Username)
	assert.Equal(t, oldHash, stored.Password)
	assert.Equal(t, models.RoleSuperAdmin, stored.Role)

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "edit_admin: Updated admin: robert", logs[0].Action)
	assert.Equal(t, bob.ID, logs[0].TargetUID)
}

func TestUpdateAdminChangesPassword(t *testing.T) {
	svc, db := newAdminService(t)
	bob := seedAdmin(t, db, "bob", "bobpass", models.RoleAdmin)

	_, err := svc.UpdateAdmin("alice", bob.ID, "bob", "newpass")
	require.NoError(t, err)

	var stored models.AdminUser
	require.NoError(t, db.Where("id = ?", bob.ID).First(&stored).Error)
	assert.True(t, utils.CheckPasswordHash("newpass", stored.Password))
	assert.False(t, utils.CheckPasswordHash("bobpass", stored.Password))
}

// 用户名被其他管理员占用时整个更新回滚
func TestUpdateAdminUsernameConflict(t *testing.T) {
	svc, db := newAdminService(t)
	seedAdmin(t, db, "alice", "pass", models.RoleSuperAdmin)
	bob := seedAdmin(t, db, "bob", "pass", models.RoleAdmin)

	_, err := svc.UpdateAdmin("alice", bob.ID, "alice", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var stored models.AdminUser
	require.NoError(t, db.Where("id = ?", bob.ID).First(&stored).Error)
	assert.Equal(t, "bob", stored.Username)
	assert.Equal(t, int64(0), countActivityLogs(t, db))
}

// 冲突检查先于存在性检查：目标不存在但用户名已占用时报冲突
func TestUpdateAdminConflictCheckedBeforeExistence(t *testing.T) {
	svc, db := newAdminService(t)
	seedAdmin(t, db, "bob", "pass", models.RoleAdmin)

	_, err := svc.UpdateAdmin("alice", "no-such-id", "bob", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateAdminMissing(t *testing.T) {
	svc, db := newAdminService(t)

	_, err := svc.UpdateAdmin("alice", "no-such-id", "bob", "")
	assert.ErrorIs(t, err, ErrAdminNotFound)
	assert.Equal(t, int64(0), countActivityLogs(t, db))
}

func TestDeleteAdmin(t *testing.T) {
	svc, db := newAdminService(t)
	bob := seedAdmin(t, db, "bob", "pass", models.RoleAdmin)

	require.NoError(t, svc.DeleteAdmin("alice", bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.AdminUser{}).Where("id = ?", bob.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "delete_admin: Deleted admin: bob", logs[0].Action)
	assert.Equal(t, bob.ID, logs[0].TargetUID)

	assert.ErrorIs(t, svc.DeleteAdmin("alice", bob.ID), ErrAdminNotFound)
}

func TestGetAllAdminsSortAndFilter(t *testing.T) {
	svc, db := newAdminService(t)
	seedAdmin(t, db, "carol", "pass", models.RoleAdmin)
	seedAdmin(t, db, "alice", "pass", models.RoleSuperAdmin)
	seedAdmin(t, db, "bob", "pass", models.RoleAdmin)

	// 默认按用户名倒序
	admins, err := svc.GetAllAdmins("", "", "")
	require.NoError(t, err)
	require.Len(t, admins, 3)
	assert.Equal(t, "carol", admins[0].Username)

	admins, err = svc.GetAllAdmins("username", "asc", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", admins[0].Username)

	// 子串过滤大小写不敏感
	admins, err = svc.GetAllAdmins("username", "asc", "B")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "bob", admins[0].Username)

	// 非法排序字段退回默认字段而不是报错
	admins, err = svc.GetAllAdmins("password", "asc", "")
	require.NoError(t, err)
	assert.Len(t, admins, 3)
}
