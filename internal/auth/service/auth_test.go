package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("individual by phone", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Register(ctx, service.RegisterInput{
			UserType: domain.UserTypeIndividual,
			Name:     "  Ada  ",
			Phone:    "+61 (400) 000-001",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.True(t, res.Success)
		require.Equal(t, "Registration successful", res.Message)

		u := res.Data.User
		require.NotEmpty(t, u.ID)
		require.Equal(t, "Ada", u.Name)
		require.Equal(t, "+61400000001", u.Phone)
		require.Equal(t, domain.RoleCustomer, u.Role)
		require.False(t, u.EmailVerified)
		require.Empty(t, f.mail.verification(u.ID), "no email, no verification link")
	})

	t.Run("corporate by email sends verification", func(t *testing.T) {
		f := newFixture(t)
		u := f.registerCorporate(t, "Ops@Acme.Example", "hunter22")
		require.Equal(t, "ops@acme.example", u.Email)
		require.Equal(t, domain.RoleCorporate, u.Role)
		require.NotEmpty(t, f.mail.verification(u.ID))
	})

	t.Run("encrypted payload", func(t *testing.T) {
		f := newFixture(t)
		sealed, err := f.cipher.Encrypt(map[string]string{
			"userType": "Corporate",
			"email":    "sealed@acme.example",
			"password": "hunter22",
		})
		require.NoError(t, err)

		res, err := f.svc.Register(ctx, service.RegisterInput{UserType: domain.UserTypeCorporate, EncryptedData: sealed})
		require.NoError(t, err)
		require.Equal(t, "sealed@acme.example", res.Data.User.Email)
		require.Equal(t, domain.UserTypeCorporate, res.Data.User.UserType)
	})
}

func TestRegisterFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      service.RegisterInput
		want    *service.Error
		message string
	}{
		{
			name:    "admin cannot sign up",
			in:      service.RegisterInput{UserType: domain.UserTypeAdmin, Email: "a@b.example", Password: "x"},
			want:    service.ErrForbiddenSignup,
			message: "Signup is only allowed for Individual and Corporate users.",
		},
		{
			name:    "superadmin cannot sign up",
			in:      service.RegisterInput{UserType: domain.UserTypeSuperAdmin, Email: "a@b.example", Password: "x"},
			want:    service.ErrForbiddenSignup,
			message: "Signup is only allowed for Individual and Corporate users.",
		},
		{
			name:    "unknown type cannot sign up",
			in:      service.RegisterInput{UserType: "Guest", Email: "a@b.example", Password: "x"},
			want:    service.ErrForbiddenSignup,
			message: "Signup is only allowed for Individual and Corporate users.",
		},
		{
			name:    "missing password",
			in:      service.RegisterInput{UserType: domain.UserTypeIndividual, Phone: "0400000001"},
			want:    service.ErrValidation,
			message: "Password is required.",
		},
		{
			name:    "individual without phone",
			in:      service.RegisterInput{UserType: domain.UserTypeIndividual, Email: "a@b.example", Password: "x"},
			want:    service.ErrValidation,
			message: "Phone is required for Individual users.",
		},
		{
			name:    "corporate without email",
			in:      service.RegisterInput{UserType: domain.UserTypeCorporate, Phone: "0400000001", Password: "x"},
			want:    service.ErrValidation,
			message: "Email is required for Corporate users.",
		},
		{
			name:    "bad email",
			in:      service.RegisterInput{UserType: domain.UserTypeCorporate, Email: "not-an-email", Password: "x"},
			want:    service.ErrValidation,
			message: "Invalid email address.",
		},
		{
			name:    "bad phone",
			in:      service.RegisterInput{UserType: domain.UserTypeIndividual, Phone: "12ab", Password: "x"},
			want:    service.ErrValidation,
			message: "Invalid phone number.",
		},
		{
			name:    "undecryptable payload",
			in:      service.RegisterInput{UserType: domain.UserTypeIndividual, EncryptedData: "bm90LWEtcmVhbC1lbnZlbG9wZQ"},
			want:    service.ErrInvalidEncryptedData,
			message: "Invalid encrypted data",
		},
		{
			name:    "admin is refused before decryption",
			in:      service.RegisterInput{UserType: domain.UserTypeAdmin, EncryptedData: "bm90LWEtcmVhbC1lbnZlbG9wZQ"},
			want:    service.ErrForbiddenSignup,
			message: "Signup is only allowed for Individual and Corporate users.",
		},
		{
			name:    "envelope without outer type",
			in:      service.RegisterInput{EncryptedData: "bm90LWEtcmVhbC1lbnZlbG9wZQ"},
			want:    service.ErrForbiddenSignup,
			message: "Signup is only allowed for Individual and Corporate users.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Register(ctx, tt.in)
			se := requireKind(t, err, tt.want)
			require.Equal(t, tt.message, se.Message)
			require.Zero(t, f.store.calls.Load(), "rejected before any store access")
		})
	}

	sealedCases := []struct {
		name  string
		outer domain.UserType
		inner map[string]string
	}{
		{
			"admin outer, individual inside",
			domain.UserTypeAdmin,
			map[string]string{"userType": "Individual", "phone": "0400000001", "password": "hunter22"},
		},
		{
			"individual outer, superadmin inside",
			domain.UserTypeIndividual,
			map[string]string{"userType": "SuperAdmin", "email": "root@store.example", "password": "hunter22"},
		},
	}
	for _, tt := range sealedCases {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sealed, err := f.cipher.Encrypt(tt.inner)
			require.NoError(t, err)

			_, err = f.svc.Register(ctx, service.RegisterInput{UserType: tt.outer, EncryptedData: sealed})
			requireKind(t, err, service.ErrForbiddenSignup)
			require.Zero(t, f.store.calls.Load(), "rejected before any store access")
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.registerIndividual(t, "0400000001", "hunter22")
	f.registerCorporate(t, "ops@acme.example", "hunter22")

	tests := []struct {
		name string
		in   service.RegisterInput
	}{
		{"same phone", service.RegisterInput{UserType: domain.UserTypeIndividual, Phone: "0400 000 001", Password: "x"}},
		{"same email", service.RegisterInput{UserType: domain.UserTypeCorporate, Email: "OPS@acme.example", Password: "x"}},
		{"email taken by other type", service.RegisterInput{
			UserType: domain.UserTypeIndividual, Phone: "0400000002", Email: "ops@acme.example", Password: "x",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tt.in)
			se := requireKind(t, err, service.ErrUserExists)
			require.Equal(t, "User already exists", se.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("individual by phone returns sealed body", func(t *testing.T) {
		f := newFixture(t)
		u := f.registerIndividual(t, "0400000001", "hunter22")

		res, err := f.svc.Login(ctx, service.LoginInput{
			UserType: domain.UserTypeIndividual,
			Phone:    "0400-000-001",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.True(t, res.Success)
		require.True(t, res.Encrypted())
		require.Nil(t, res.Data)

		var body service.LoginResult
		require.NoError(t, f.cipher.Decrypt(res.EncryptedData, &body))
		require.Equal(t, "Login successful", body.Message)
		require.NotNil(t, body.Data)
		require.Equal(t, u.ID, body.Data.User.ID)

		sub, err := f.tokens.Verify(body.Data.Token)
		require.NoError(t, err)
		require.Equal(t, u.ID, sub)
	})

	t.Run("corporate by email", func(t *testing.T) {
		f := newFixture(t)
		f.registerCorporate(t, "ops@acme.example", "hunter22")

		res, err := f.svc.Login(ctx, service.LoginInput{
			UserType: domain.UserTypeCorporate,
			Email:    " OPS@acme.example ",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.True(t, res.Encrypted())
	})

	t.Run("falls back to plaintext when sealing fails", func(t *testing.T) {
		f := newFixture(t)
		u := f.registerIndividual(t, "0400000001", "hunter22")
		f.svc.Cipher = brokenCipher{}

		res, err := f.svc.Login(ctx, service.LoginInput{
			UserType: domain.UserTypeIndividual,
			Phone:    "0400000001",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.False(t, res.Encrypted())
		require.Equal(t, "Login successful", res.Message)
		require.NotNil(t, res.Data)
		require.Equal(t, u.ID, res.Data.User.ID)
		require.NotEmpty(t, res.Data.Token)
	})

	t.Run("no cipher configured", func(t *testing.T) {
		f := newFixture(t)
		f.registerIndividual(t, "0400000001", "hunter22")
		f.svc.Cipher = nil

		res, err := f.svc.Login(ctx, service.LoginInput{
			UserType: domain.UserTypeIndividual,
			Phone:    "0400000001",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.False(t, res.Encrypted())
		require.NotNil(t, res.Data)
	})
}

func TestLoginMissingFieldsSkipStore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      service.LoginInput
		want    *service.Error
		message string
	}{
		{
			name:    "admin without password",
			in:      service.LoginInput{UserType: domain.UserTypeAdmin, Email: "a@b.example"},
			want:    service.ErrMissingCredentials,
			message: "Email and password are required for this user type.",
		},
		{
			name:    "superadmin without email",
			in:      service.LoginInput{UserType: domain.UserTypeSuperAdmin, Password: "x"},
			want:    service.ErrMissingCredentials,
			message: "Email and password are required for this user type.",
		},
		{
			name:    "corporate with phone only",
			in:      service.LoginInput{UserType: domain.UserTypeCorporate, Phone: "0400000001", Password: "x"},
			want:    service.ErrMissingCredentials,
			message: "Email and password are required for this user type.",
		},
		{
			name:    "individual with email only",
			in:      service.LoginInput{UserType: domain.UserTypeIndividual, Email: "a@b.example", Password: "x"},
			want:    service.ErrMissingCredentials,
			message: "Phone and password are required for Individual login.",
		},
		{
			name:    "unknown type",
			in:      service.LoginInput{UserType: "Guest", Email: "a@b.example", Password: "x"},
			want:    service.ErrInvalidUserType,
			message: "Invalid userType.",
		},
		{
			name:    "empty type",
			in:      service.LoginInput{Email: "a@b.example", Password: "x"},
			want:    service.ErrInvalidUserType,
			message: "Invalid userType.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Login(ctx, tt.in)
			se := requireKind(t, err, tt.want)
			require.Equal(t, tt.message, se.Message)
			require.Zero(t, f.store.calls.Load())
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerIndividual(t, "0400000001", "hunter22")
	f.registerCorporate(t, "ops@acme.example", "hunter22")

	tests := []struct {
		name string
		in   service.LoginInput
	}{
		{"unknown phone", service.LoginInput{UserType: domain.UserTypeIndividual, Phone: "0499999999", Password: "hunter22"}},
		{"unknown email", service.LoginInput{UserType: domain.UserTypeCorporate, Email: "nobody@acme.example", Password: "hunter22"}},
		{"wrong password", service.LoginInput{UserType: domain.UserTypeIndividual, Phone: "0400000001", Password: "hunter23"}},
		{"corporate account as admin", service.LoginInput{UserType: domain.UserTypeAdmin, Email: "ops@acme.example", Password: "hunter22"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tt.in)
			se := requireKind(t, err, service.ErrInvalidCredentials)
			require.Equal(t, "Invalid credentials", se.Message)
		})
	}
}

func TestLoginStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc := &service.AuthService{Store: failingStore{}}

	_, err := svc.Login(ctx, service.LoginInput{
		UserType: domain.UserTypeCorporate,
		Email:    "ops@acme.example",
		Password: "hunter22",
	})
	se := requireKind(t, err, service.ErrInternal)
	require.Equal(t, "Login failed", se.Message)
	require.ErrorIs(t, err, errDisk)
}
