package i18n

// Message keys for the interface text.
const (
	AppTitle = "app.title"

	FieldName        = "field.name"
	FieldNickname    = "field.nickname"
	FieldEmail       = "field.email"
	FieldPassword    = "field.password"
	FieldConfirm     = "field.confirm"
	FieldNewPassword = "field.new_password"
	FieldCode        = "field.code"

	LoginTitle    = "login.title"
	LoginHelp     = "login.help"
	RegisterTitle = "register.title"
	RegisterHelp  = "register.help"
	VerifyTitle   = "verify.title"
	VerifyPrompt  = "verify.prompt"
	VerifyHelp    = "verify.help"
	ResetTitle    = "reset.title"
	ResetHelp     = "reset.help"
	Loading       = "loading"

	CodeResent   = "status.code_resent"
	RegisterDone = "status.register_done"
	ResetDone    = "status.reset_done"
	Welcome      = "status.welcome"

	ErrEmptyField       = "error.empty_field"
	ErrInvalidName      = "error.invalid_name"
	ErrInvalidNickname  = "error.invalid_nickname"
	ErrInvalidEmail     = "error.invalid_email"
	ErrInvalidPassword  = "error.invalid_password"
	ErrPasswordMismatch = "error.password_mismatch"
	ErrEmailTaken       = "error.email_taken"
	ErrNicknameTaken    = "error.nickname_taken"
	ErrUnknownEmail     = "error.unknown_email"
	ErrBadPassword      = "error.bad_password"
	ErrTooManyAttempts  = "error.too_many_attempts"
	ErrCodeFormat       = "error.code_format"
	ErrCodeExpired      = "error.code_expired"
	ErrCodeMismatch     = "error.code_mismatch"
	ErrCodeUsed         = "error.code_used"
	ErrSendFailed       = "error.send_failed"
	ErrUnexpected       = "error.unexpected"
	ErrNoSelection      = "error.no_selection"
	ErrAtRoot           = "error.at_root"
	ErrCorruption       = "error.corruption"
	ErrSaveFailed       = "error.save_failed"
	ErrReflection       = "error.reflection"

	MenuTitle          = "menu.title"
	MenuHelp           = "menu.help"
	MenuContinue       = "menu.continue"
	MenuCompleted      = "menu.completed"
	StoryInDevelopment = "menu.in_development"
	StoryLivia         = "menu.story.livia"
	StoryInequality    = "menu.story.inequality"

	StoryHelp       = "story.help"
	OutcomeHelp     = "outcome.help"
	ReflectionTitle = "reflection.title"
	ReflectionAI    = "reflection.ai"
	ReflectionWait  = "reflection.wait"
	ReflectionHelp  = "reflection.help"
	ProfileTitle    = "profile.title"
	ProfileHelp     = "profile.help"
	AttributesTitle = "profile.attributes"

	AttrJustice    = "attr.Justice"
	AttrReputation = "attr.Reputation"
	AttrEmpathy    = "attr.Empathy"
	AttrStress     = "attr.Stress"
)
