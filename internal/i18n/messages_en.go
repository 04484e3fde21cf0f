package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, AppTitle, "In Their Skin, On Your Conscience")

	message.SetString(lang, FieldName, "Name")
	message.SetString(lang, FieldNickname, "Nickname")
	message.SetString(lang, FieldEmail, "Email")
	message.SetString(lang, FieldPassword, "Password")
	message.SetString(lang, FieldConfirm, "Confirm password")
	message.SetString(lang, FieldNewPassword, "New password")
	message.SetString(lang, FieldCode, "Code")

	message.SetString(lang, LoginTitle, "Sign in")
	message.SetString(lang, LoginHelp, "enter: continue • tab: next field • ctrl+r: sign up • ctrl+f: forgot password • ctrl+s: show password • esc: quit")
	message.SetString(lang, RegisterTitle, "Sign up")
	message.SetString(lang, RegisterHelp, "enter: next field • tab/shift+tab: move • ctrl+s: show password • esc: back")
	message.SetString(lang, VerifyTitle, "Verification")
	message.SetString(lang, VerifyPrompt, "We sent a 6-digit code to %s.")
	message.SetString(lang, VerifyHelp, "enter: verify • ctrl+n: resend code • esc: back")
	message.SetString(lang, ResetTitle, "Reset password")
	message.SetString(lang, ResetHelp, "enter: next field • ctrl+s: show password • esc: back")
	message.SetString(lang, Loading, "Please wait...")

	message.SetString(lang, CodeResent, "A new code was sent to %s.")
	message.SetString(lang, RegisterDone, "All set! Welcome, %s.")
	message.SetString(lang, ResetDone, "Password reset. Sign in with the new password.")
	message.SetString(lang, Welcome, "Hello, %s!")

	message.SetString(lang, ErrEmptyField, "Please fill in every field.")
	message.SetString(lang, ErrInvalidName, "The name must have up to 20 letters, with no digits or symbols.")
	message.SetString(lang, ErrInvalidNickname, "The nickname must have up to 10 characters and no spaces.")
	message.SetString(lang, ErrInvalidEmail, "Invalid email. Use a %s address.")
	message.SetString(lang, ErrInvalidPassword, "The password must have exactly 6 characters, with no letters or spaces.")
	message.SetString(lang, ErrPasswordMismatch, "Passwords do not match.")
	message.SetString(lang, ErrEmailTaken, "This email is already registered.")
	message.SetString(lang, ErrNicknameTaken, "This nickname is already taken.")
	message.SetString(lang, ErrUnknownEmail, "Email not registered.")
	message.SetString(lang, ErrBadPassword, "Wrong password. Attempts left: %d.")
	message.SetString(lang, ErrTooManyAttempts, "Too many failed attempts. Please reset your password.")
	message.SetString(lang, ErrCodeFormat, "The code must have 6 digits.")
	message.SetString(lang, ErrCodeExpired, "Code expired. Press ctrl+n to get a new one.")
	message.SetString(lang, ErrCodeMismatch, "Wrong code.")
	message.SetString(lang, ErrCodeUsed, "This code was already used.")
	message.SetString(lang, ErrSendFailed, "Could not send the email. Please try again.")
	message.SetString(lang, ErrUnexpected, "Unexpected error: %s")
	message.SetString(lang, ErrNoSelection, "Please select an option before continuing.")
	message.SetString(lang, ErrAtRoot, "You are already at the beginning of the story.")
	message.SetString(lang, ErrCorruption, "Your progress no longer matches the story. The story was restarted.")
	message.SetString(lang, ErrSaveFailed, "Could not save your progress.")
	message.SetString(lang, ErrReflection, "Could not generate a personal reflection.")

	message.SetString(lang, MenuTitle, "Choose a story")
	message.SetString(lang, MenuHelp, "↑/↓: move • enter: open • q: quit")
	message.SetString(lang, MenuContinue, "(continue)")
	message.SetString(lang, MenuCompleted, "(completed)")
	message.SetString(lang, StoryInDevelopment, "%s is still in development.")
	message.SetString(lang, StoryLivia, "Dr. Lívia's Journey")
	message.SetString(lang, StoryInequality, "Social Inequality")

	message.SetString(lang, StoryHelp, "↑/↓ or 1-9: select • enter: 🚀 Continue • b: ↩️ Back • r: 🔄 Restart • esc: menu")
	message.SetString(lang, OutcomeHelp, "enter: continue • b: ↩️ Back • r: 🔄 Restart")
	message.SetString(lang, ReflectionTitle, "Reflection")
	message.SetString(lang, ReflectionAI, "A reflection on your choice")
	message.SetString(lang, ReflectionWait, "Writing a reflection on your choice...")
	message.SetString(lang, ReflectionHelp, "enter: see profile • ↑/↓: scroll")
	message.SetString(lang, ProfileTitle, "Your profile")
	message.SetString(lang, ProfileHelp, "r: 🔄 Restart • m: menu • q: quit")
	message.SetString(lang, AttributesTitle, "Attributes")

	message.SetString(lang, AttrJustice, "Justice")
	message.SetString(lang, AttrReputation, "Reputation")
	message.SetString(lang, AttrEmpathy, "Empathy")
	message.SetString(lang, AttrStress, "Stress")
}
