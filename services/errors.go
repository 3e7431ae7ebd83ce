package services

import "errors"

// 业务错误，控制器用 errors.Is 判断后转换为页面通知或错误码
var (
	// ErrInvalidCredentials 用户名不存在或密码不匹配，对外不作区分
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminNotFound 管理员不存在
	ErrAdminNotFound = errors.New("admin not found")
	// ErrUsernameTaken 管理员用户名已被其他账号占用
	ErrUsernameTaken = errors.New("username already exists")
	// ErrIndividualNotFound 用户不存在
	ErrIndividualNotFound = errors.New("user not found")
	// ErrUsernameRequired 缺少必填的用户名
	ErrUsernameRequired = errors.New("username is required")
)
