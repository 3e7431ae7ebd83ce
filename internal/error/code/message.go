package code

// 错误码消息映射（面向英文界面的用户提示）
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "success",
	ErrUnknown:          "internal server error",
	ErrBind:             "invalid request parameters",
	ErrValidation:       "request validation failed",
	ErrTokenInvalid:     "invalid authentication token",
	ErrNotAuthenticated: "login required",
	ErrInsufficientRole: "Super Admin access required.",

	// 管理员相关错误码
	ErrAdminNotFound:     "Admin not found",
	ErrAdminAlreadyExist: "Username already exists",
	ErrPasswordIncorrect: "Invalid credentials",

	// 用户相关错误码
	ErrIndividualNotFound: "User not found",

	// 引导记录相关错误码
	ErrGuidanceNotFound: "Guidance record not found",

	// 数据库相关错误码
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrNotAuthenticated: StatusUnauthorized,
	ErrInsufficientRole: StatusForbidden,

	ErrAdminNotFound:     StatusNotFound,
	ErrAdminAlreadyExist: StatusConflict,
	ErrPasswordIncorrect: StatusUnauthorized,

	ErrIndividualNotFound: StatusNotFound,

	ErrGuidanceNotFound: StatusNotFound,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 返回错误码对应的用户提示
func GetMessage(errorCode int) string {
	if msg, ok := codeMessageMap[errorCode]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 返回错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
