package validation

// MaxImageBytes is the upload limit for profile pictures.
const MaxImageBytes = 1 * 1024 * 1024

type LoginForm struct {
	Email    string `json:"email" validate:"required,emailaddr"`
	Password string `json:"password" validate:"required"`
}

func (LoginForm) Messages() map[string]string {
	return map[string]string{
		"Email.required":    "Email is required",
		"Email.emailaddr":   "Invalid email address",
		"Password.required": "Password is required",
	}
}

type RegisterForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,emailaddr"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (RegisterForm) Messages() map[string]string {
	return map[string]string{
		"Name.required":            "Name is required",
		"Email.required":           "Email is required",
		"Email.emailaddr":          "Invalid email address",
		"Password.required":        "Password is required",
		"Password.min":             "Password must be at least 6 characters",
		"ConfirmPassword.required": "Please confirm your password",
		"ConfirmPassword.eqfield":  "Passwords do not match",
	}
}

type ForgotPasswordForm struct {
	Email string `json:"email" validate:"required,emailaddr"`
}

func (ForgotPasswordForm) Messages() map[string]string {
	return map[string]string{
		"Email.required":  "Email is required",
		"Email.emailaddr": "Invalid email address",
	}
}

type OTPForm struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"otp6"`
}

func (OTPForm) Messages() map[string]string {
	return map[string]string{
		"Email.required": "Email is required",
		"OTP.otp6":       "Please enter the full 6-digit OTP",
	}
}

type ResetPasswordForm struct {
	Email           string `json:"email" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func (ResetPasswordForm) Messages() map[string]string {
	return map[string]string{
		"Email.required":           "Email is missing from the link.",
		"NewPassword.required":     "Password is required",
		"ConfirmPassword.required": "Please confirm password",
		"ConfirmPassword.eqfield":  "Passwords do not match.",
	}
}

type ProfileForm struct {
	Name        string `json:"name" validate:"required,min=2,max=50,personname"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone10"`
}

func (ProfileForm) Messages() map[string]string {
	return map[string]string{
		"Name.required":        "Name is required",
		"Name.min":             "Name must be at least 2 characters",
		"Name.max":             "Name cannot exceed 50 characters",
		"Name.personname":      "First name can only contain letters, spaces, or hyphens",
		"PhoneNumber.required": "Phone number is required",
		"PhoneNumber.phone10":  "Phone number must be exactly 10 digits",
	}
}

type BookingForm struct {
	Speciality string `json:"speciality" validate:"required"`
	DoctorID   string `json:"doctor" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
}

func (BookingForm) Messages() map[string]string {
	return map[string]string{
		"Speciality.required": "Please select a speciality",
		"DoctorID.required":   "Please select a doctor",
		"Date.required":       "Please select a time slot",
		"Time.required":       "Please select a time slot",
	}
}

type ImageForm struct {
	Filename string `json:"picture" validate:"required"`
	Size     int    `json:"size" validate:"gt=0,lte=1048576"`
}

func (ImageForm) Messages() map[string]string {
	return map[string]string{
		"Filename.required": "At least one file is required.",
		"Size.gt":           "At least one file is required.",
		"Size.lte":          "File size should be less than 1 MB only",
	}
}
