package validation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker counts lookups and returns canned results so tests can assert
// both outcomes and that checks were (not) issued.
type fakeChecker struct {
	usernameTaken bool
	emailTaken    bool
	phoneTaken    bool
	whatsappTaken bool
	err           error
	calls         int64
}

func (f *fakeChecker) UsernameExists(ctx context.Context, _ string) (bool, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.usernameTaken, f.err
}
func (f *fakeChecker) EmailExists(ctx context.Context, _ string) (bool, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.emailTaken, f.err
}
func (f *fakeChecker) PhoneExists(ctx context.Context, _ string) (bool, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.phoneTaken, f.err
}
func (f *fakeChecker) WhatsappExists(ctx context.Context, _ string) (bool, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.whatsappTaken, f.err
}

func rawKey(key string) string { return key }

func validForm() Form {
	return Form{
		FullName:        "John Doe",
		Username:        "john_doe",
		Email:           "john@example.com",
		Password:        "s3cret!pass",
		ConfirmPassword: "s3cret!pass",
		Phone:           "+90 555 000 1122",
		UserType:        TypeClient,
	}
}

func TestValidateHappyPath(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}
	res := v.Validate(context.Background(), validForm(), true, rawKey)
	require.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateBadEmailSkipsUniqueness(t *testing.T) {
	ck := &fakeChecker{}
	v := &Validator{Checker: ck}
	form := validForm()
	form.Email = "bad-email"

	res := v.Validate(context.Background(), form, true, rawKey)
	require.False(t, res.IsValid)
	assert.Equal(t, "validation.email_invalid", res.Errors[FieldEmail])
	assert.Zero(t, atomic.LoadInt64(&ck.calls), "no uniqueness calls on format errors")
}

func TestValidateUsernameFormatShortCircuits(t *testing.T) {
	ck := &fakeChecker{}
	v := &Validator{Checker: ck}
	form := validForm()
	form.Username = "john doe!"

	res := v.Validate(context.Background(), form, true, rawKey)
	require.False(t, res.IsValid)
	assert.Equal(t, "validation.username_format", res.Errors[FieldUsername])
	assert.Zero(t, atomic.LoadInt64(&ck.calls))
}

func TestValidateNameRules(t *testing.T) {
	cases := []struct {
		name  string
		value string
		key   string
	}{
		{"empty", "", "validation.name_required"},
		{"latin digits", "John 2 Doe", "validation.name_letters"},
		{"arabic digits", "أحمد ٣", "validation.name_letters"},
		{"symbols", "John_Doe", "validation.name_letters"},
	}
	v := &Validator{Checker: &fakeChecker{}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			form.FullName = tc.value
			res := v.Validate(context.Background(), form, true, rawKey)
			require.False(t, res.IsValid)
			assert.Equal(t, tc.key, res.Errors[FieldFullName])
		})
	}
}

func TestValidateMultiScriptNamesAccepted(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}
	for _, name := range []string{"John Doe", "أحمد محمود", "Gökçe Şahin", "Çağrı Öztürk"} {
		form := validForm()
		form.FullName = name
		res := v.Validate(context.Background(), form, true, rawKey)
		assert.True(t, res.IsValid, "name %q should be accepted: %v", name, res.Errors)
	}
}

func TestValidatePasswordMismatch(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}
	form := validForm()
	form.ConfirmPassword = "different"
	res := v.Validate(context.Background(), form, true, rawKey)
	require.False(t, res.IsValid)
	assert.Equal(t, "validation.password_mismatch", res.Errors[FieldConfirm])
}

func TestValidateSellerWhatsappRequired(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}
	for _, ut := range []string{TypeAgent, TypePropertyOwner, TypeRealEstateOffice} {
		form := validForm()
		form.UserType = ut
		form.WhatsappNumber = ""
		res := v.Validate(context.Background(), form, true, rawKey)
		require.False(t, res.IsValid, "user type %s", ut)
		assert.Equal(t, "validation.whatsapp_required", res.Errors[FieldWhatsapp])
	}

	// A client may leave it empty.
	form := validForm()
	form.UserType = TypeClient
	form.WhatsappNumber = ""
	res := v.Validate(context.Background(), form, true, rawKey)
	assert.True(t, res.IsValid)
	assert.NotContains(t, res.Errors, FieldWhatsapp)
}

func TestValidateTermsRequired(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}
	res := v.Validate(context.Background(), validForm(), false, rawKey)
	require.False(t, res.IsValid)
	assert.Equal(t, "validation.terms_required", res.Errors[FieldTerms])
}

func TestValidateTakenFields(t *testing.T) {
	ck := &fakeChecker{usernameTaken: true, phoneTaken: true}
	v := &Validator{Checker: ck}
	res := v.Validate(context.Background(), validForm(), true, rawKey)
	require.False(t, res.IsValid)
	assert.Equal(t, "validation.username_taken", res.Errors[FieldUsername])
	assert.Equal(t, "validation.phone_taken", res.Errors[FieldPhone])
	assert.NotContains(t, res.Errors, FieldEmail)
}

func TestValidateWhatsappCheckedOnlyWhenPresent(t *testing.T) {
	ck := &fakeChecker{whatsappTaken: true}
	v := &Validator{Checker: ck}

	form := validForm()
	form.WhatsappNumber = "+90 555 111 2233"
	res := v.Validate(context.Background(), form, true, rawKey)
	require.False(t, res.IsValid)
	assert.Equal(t, "validation.whatsapp_taken", res.Errors[FieldWhatsapp])

	form.WhatsappNumber = ""
	res = v.Validate(context.Background(), form, true, rawKey)
	assert.True(t, res.IsValid)
}

// A failing checker is treated as "available" so a backend blip does not
// block signups; the unique indexes catch real duplicates at insert time.
func TestValidateFailOpenOnCheckerError(t *testing.T) {
	ck := &fakeChecker{err: errors.New("connection refused")}
	v := &Validator{Checker: ck}
	res := v.Validate(context.Background(), validForm(), true, rawKey)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestCheckFieldFormatBeforeLookup(t *testing.T) {
	ck := &fakeChecker{}
	v := &Validator{Checker: ck}

	st := v.CheckField(context.Background(), FieldUsername, "not valid!", rawKey)
	assert.Equal(t, StatusInvalid, st.Status)
	assert.Equal(t, "validation.username_format", st.Err)
	assert.Zero(t, atomic.LoadInt64(&ck.calls))
}

func TestCheckFieldPhonePattern(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}

	st := v.CheckField(context.Background(), FieldPhone, "+90 (555) 000-1122", rawKey)
	assert.Equal(t, StatusValid, st.Status)

	st = v.CheckField(context.Background(), FieldPhone, "12ab", rawKey)
	assert.Equal(t, StatusInvalid, st.Status)
	assert.Equal(t, "validation.phone_invalid", st.Err)
}

func TestCheckFieldEmptyResetsToIdle(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{}}
	st := v.CheckField(context.Background(), FieldEmail, "  ", rawKey)
	assert.Equal(t, StatusIdle, st.Status)
	assert.False(t, st.Checked)
}

func TestCheckFieldErrorSurfacesGenericMessage(t *testing.T) {
	v := &Validator{Checker: &fakeChecker{err: errors.New("boom")}}
	st := v.CheckField(context.Background(), FieldEmail, "a@b.co", rawKey)
	assert.Equal(t, StatusInvalid, st.Status)
	assert.Equal(t, "validation.check_failed", st.Err)
	assert.True(t, st.Checked)
}
