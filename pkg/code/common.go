package code

import "net/http"

var (
	Success       = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(2, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(3, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(4, lang{en: "Deleted successfully", zh_cn: "删除成功"})

	// 通用
	ErrorServerInternal     = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI        = NewError(501, http.StatusNotFound, lang{en: "API not found", zh_cn: "找不到API"})
	ErrorInvalidParams      = NewError(502, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorTooManyRequests    = NewError(503, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery            = NewError(504, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorRequestTimeout     = NewError(505, http.StatusGatewayTimeout, lang{en: "Request timed out", zh_cn: "请求超时"})
	ErrorServiceUnavailable = NewError(506, http.StatusServiceUnavailable, lang{en: "External service unavailable", zh_cn: "外部服务不可用"})

	// 认证
	ErrorNotUserAuthToken     = NewError(510, http.StatusUnauthorized, lang{en: "Authentication token missing", zh_cn: "缺少身份验证令牌"})
	ErrorInvalidUserAuthToken = NewError(511, http.StatusUnauthorized, lang{en: "Invalid or expired authentication token", zh_cn: "身份验证令牌无效或已过期"})
	ErrorTokenGenerate        = NewError(512, http.StatusInternalServerError, lang{en: "Failed to generate token", zh_cn: "生成令牌失败"})

	// 用户
	ErrorUserRegister            = NewError(520, http.StatusInternalServerError, lang{en: "Registration failed", zh_cn: "注册失败"})
	ErrorUserEmailAlreadyExists  = NewError(521, http.StatusBadRequest, lang{en: "Email already registered", zh_cn: "邮箱已被注册"})
	ErrorUserLoginPasswordFailed = NewError(522, http.StatusBadRequest, lang{en: "Invalid credentials", zh_cn: "邮箱或密码错误"})
	ErrorUserNotFound            = NewError(523, http.StatusNotFound, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserEmailNotValid       = NewError(524, http.StatusBadRequest, lang{en: "Email is not valid", zh_cn: "邮箱格式不正确"})
	ErrorPasswordNotValid        = NewError(525, http.StatusBadRequest, lang{en: "Password is not valid", zh_cn: "密码不符合要求"})
	ErrorUserOldPasswordFailed   = NewError(526, http.StatusBadRequest, lang{en: "Current password is incorrect", zh_cn: "当前密码错误"})
	ErrorUserRegisterIsDisable   = NewError(527, http.StatusForbidden, lang{en: "Registration is disabled", zh_cn: "注册已关闭"})

	// 笔记
	ErrorNoteNotFound     = NewError(530, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteCreateFailed = NewError(531, http.StatusInternalServerError, lang{en: "Failed to create note", zh_cn: "创建笔记失败"})
	ErrorNoteUpdateFailed = NewError(532, http.StatusInternalServerError, lang{en: "Failed to update note", zh_cn: "更新笔记失败"})
	ErrorNoteDeleteFailed = NewError(533, http.StatusInternalServerError, lang{en: "Failed to delete note", zh_cn: "删除笔记失败"})

	// 语音命令
	ErrorCommandMissingID    = NewError(540, http.StatusBadRequest, lang{en: "Note ID missing", zh_cn: "缺少笔记ID"})
	ErrorCommandUnknown      = NewError(541, http.StatusBadRequest, lang{en: "Unknown command", zh_cn: "无法识别的命令"})
	ErrorSpeechNotRecognized = NewError(542, http.StatusUnprocessableEntity, lang{en: "STT failed", zh_cn: "语音识别失败"})
	ErrorLanguageNotValid    = NewError(545, http.StatusBadRequest, lang{en: "Unsupported language code", zh_cn: "不支持的语言代码"})

	// 音频
	ErrorAudioInvalidFormat = NewError(550, http.StatusBadRequest, lang{en: "Invalid audio format", zh_cn: "音频格式无效"})
	ErrorAudioTooLarge      = NewError(551, http.StatusRequestEntityTooLarge, lang{en: "Audio file too large", zh_cn: "音频文件过大"})
	ErrorAudioNotFound      = NewError(552, http.StatusNotFound, lang{en: "File not found", zh_cn: "文件不存在"})
	ErrorAudioSaveFailed    = NewError(553, http.StatusInternalServerError, lang{en: "Failed to save audio file", zh_cn: "保存音频失败"})
	ErrorAudioMissing       = NewError(554, http.StatusBadRequest, lang{en: "Audio file is required", zh_cn: "缺少音频文件"})

	// 存储
	ErrorInvalidStorageType = NewError(560, http.StatusInternalServerError, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
	ErrorStorageUpload      = NewError(561, http.StatusInternalServerError, lang{en: "Storage upload failed", zh_cn: "存储上传失败"})
)
