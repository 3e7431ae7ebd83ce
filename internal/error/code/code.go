package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrNotAuthenticated - 401: 未登录.
	ErrNotAuthenticated
	// ErrInsufficientRole - 403: 权限不足.
	ErrInsufficientRole
)

// 管理员相关错误码 (101xxx).
const (
	// ErrAdminNotFound - 404: 管理员不存在.
	ErrAdminNotFound int = iota + 101000
	// ErrAdminAlreadyExist - 409: 管理员用户名已存在.
	ErrAdminAlreadyExist
	// ErrPasswordIncorrect - 401: 用户名或密码错误.
	ErrPasswordIncorrect
)

// 用户相关错误码 (102xxx).
const (
	// ErrIndividualNotFound - 404: 用户不存在.
	ErrIndividualNotFound int = iota + 102000
)

// 引导记录相关错误码 (103xxx).
const (
	// ErrGuidanceNotFound - 404: 引导记录不存在.
	ErrGuidanceNotFound int = iota + 103000
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
