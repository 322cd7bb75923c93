// Package validation gates account creation on synchronous format rules plus
// asynchronous uniqueness checks against existing profiles, and offers a
// debounced live path for per-field feedback while the user types.
package validation

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// Account types selectable at signup. The seller-like types must provide a
// WhatsApp number so buyers can reach them.
const (
	TypeClient           = "client"
	TypeAgent            = "agent"
	TypePropertyOwner    = "property_owner"
	TypeRealEstateOffice = "real_estate_office"
)

// IsSellerType reports whether userType is one of the seller-like roles.
func IsSellerType(userType string) bool {
	switch userType {
	case TypeAgent, TypePropertyOwner, TypeRealEstateOffice:
		return true
	}
	return false
}

// Field names used as keys in Result.Errors.
const (
	FieldFullName = "fullName"
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldConfirm  = "confirmPassword"
	FieldPhone    = "phone"
	FieldWhatsapp = "whatsappNumber"
	FieldTerms    = "acceptTerms"
)

var (
	// Letters from the Latin, Arabic and Turkish-specific sets plus spaces.
	nameRe     = regexp.MustCompile(`^[A-Za-z\x{0621}-\x{064A}çğıöşüÇĞİÖŞÜ ]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Live-path phone shape: optional +, then at least seven digit-like
	// characters allowing spaces, parens and dashes.
	phoneRe = regexp.MustCompile(`^\+?[0-9 ()\-]{7,}$`)
)

// Form carries the signup fields as submitted.
type Form struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	WhatsappNumber  string
	UserType        string
}

// Result is the outcome of a validation pass. Errors maps field names to
// localized messages for display next to each input.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

// UniquenessChecker answers whether a candidate value is already claimed by
// an existing profile. Username and email comparisons are case-insensitive;
// phone and WhatsApp are exact. Implemented by the user repository.
type UniquenessChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	WhatsappExists(ctx context.Context, number string) (bool, error)
}

// Translator turns a message key into a localized string.
type Translator func(key string) string

// Validator runs the signup validation pipeline.
type Validator struct {
	Checker UniquenessChecker
}

// Validate applies the synchronous rules and, only when all of them pass,
// the uniqueness checks. Format failures therefore never trigger network
// round trips. The returned error is reserved for programmer mistakes; check
// failures degrade per field instead (see checkUniqueness).
func (v *Validator) Validate(ctx context.Context, form Form, acceptTerms bool, t Translator) Result {
	errs := v.validateFormat(form, acceptTerms, t)
	if len(errs) > 0 {
		return Result{IsValid: false, Errors: errs}
	}
	errs = v.checkUniqueness(ctx, form, t)
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// validateFormat runs the synchronous rules and returns field-keyed errors.
func (v *Validator) validateFormat(form Form, acceptTerms bool, t Translator) map[string]string {
	errs := map[string]string{}

	name := strings.TrimSpace(form.FullName)
	switch {
	case name == "":
		errs[FieldFullName] = t("validation.name_required")
	case containsDigit(name) || !nameRe.MatchString(name):
		errs[FieldFullName] = t("validation.name_letters")
	}

	username := strings.TrimSpace(form.Username)
	switch {
	case username == "":
		errs[FieldUsername] = t("validation.username_required")
	case !usernameRe.MatchString(username):
		errs[FieldUsername] = t("validation.username_format")
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		errs[FieldEmail] = t("validation.email_required")
	case !emailRe.MatchString(email):
		errs[FieldEmail] = t("validation.email_invalid")
	}

	if form.Password == "" {
		errs[FieldPassword] = t("validation.password_required")
	} else if form.Password != form.ConfirmPassword {
		errs[FieldConfirm] = t("validation.password_mismatch")
	}

	if strings.TrimSpace(form.Phone) == "" {
		errs[FieldPhone] = t("validation.phone_required")
	}

	if IsSellerType(form.UserType) && strings.TrimSpace(form.WhatsappNumber) == "" {
		errs[FieldWhatsapp] = t("validation.whatsapp_required")
	}

	if !acceptTerms {
		errs[FieldTerms] = t("validation.terms_required")
	}

	return errs
}

// checkUniqueness runs the four lookups in parallel and joins on all of
// them. A lookup that errors is logged and treated as available: a transient
// backend failure must not block signups. The race between two simultaneous
// signups passing these checks is settled by the unique indexes at insert
// time.
func (v *Validator) checkUniqueness(ctx context.Context, form Form, t Translator) map[string]string {
	type check struct {
		field  string
		msgKey string
		run    func(context.Context) (bool, error)
	}

	checks := []check{
		{FieldUsername, "validation.username_taken", func(ctx context.Context) (bool, error) {
			return v.Checker.UsernameExists(ctx, strings.TrimSpace(form.Username))
		}},
		{FieldEmail, "validation.email_taken", func(ctx context.Context) (bool, error) {
			return v.Checker.EmailExists(ctx, strings.TrimSpace(form.Email))
		}},
		{FieldPhone, "validation.phone_taken", func(ctx context.Context) (bool, error) {
			return v.Checker.PhoneExists(ctx, strings.TrimSpace(form.Phone))
		}},
	}
	if strings.TrimSpace(form.WhatsappNumber) != "" {
		checks = append(checks, check{FieldWhatsapp, "validation.whatsapp_taken", func(ctx context.Context) (bool, error) {
			return v.Checker.WhatsappExists(ctx, strings.TrimSpace(form.WhatsappNumber))
		}})
	}

	var (
		mu   sync.Mutex
		errs = map[string]string{}
		wg   sync.WaitGroup
	)
	for _, ck := range checks {
		wg.Add(1)
		go func(ck check) {
			defer wg.Done()
			taken, err := ck.run(ctx)
			if err != nil {
				log.Printf("validation: %s uniqueness check failed (treated as available): %v", ck.field, err)
				return
			}
			if taken {
				mu.Lock()
				errs[ck.field] = t(ck.msgKey)
				mu.Unlock()
			}
		}(ck)
	}
	wg.Wait()
	return errs
}

// CheckField is the single-shot per-field path used by the availability
// endpoint and the live validator: format first, then uniqueness. The field
// argument accepts the Field* names for username, email and phone.
func (v *Validator) CheckField(ctx context.Context, field, value string, t Translator) FieldState {
	value = strings.TrimSpace(value)
	if value == "" {
		return FieldState{Status: StatusIdle}
	}

	var (
		formatOK bool
		badKey   string
		takenKey string
		lookup   func(context.Context, string) (bool, error)
	)
	switch field {
	case FieldUsername:
		formatOK = usernameRe.MatchString(value)
		badKey, takenKey = "validation.username_format", "validation.username_taken"
		lookup = v.Checker.UsernameExists
	case FieldEmail:
		formatOK = emailRe.MatchString(value)
		badKey, takenKey = "validation.email_invalid", "validation.email_taken"
		lookup = v.Checker.EmailExists
	case FieldPhone:
		formatOK = phoneRe.MatchString(value)
		badKey, takenKey = "validation.phone_invalid", "validation.phone_taken"
		lookup = v.Checker.PhoneExists
	default:
		return FieldState{Status: StatusInvalid, Err: t("validation.check_failed"), Checked: true}
	}

	if !formatOK {
		return FieldState{Status: StatusInvalid, Err: t(badKey), Checked: true}
	}
	taken, err := lookup(ctx, value)
	if err != nil {
		return FieldState{Status: StatusInvalid, Err: t("validation.check_failed"), Checked: true}
	}
	if taken {
		return FieldState{Status: StatusInvalid, Err: t(takenKey), Checked: true}
	}
	return FieldState{Status: StatusValid, Checked: true}
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
