package domain

// ---------- Mensajes de autenticación ----------
const (
	MsgUsernameRequired = "Username is required"
	MsgPasswordRequired = "Password is required"
	MsgNoAccount        = "Account is not registered"
	MsgPasswordMismatch = "Password doesn't match with your account"
	MsgUsernameTaken    = "Username has been taken"
	MsgEmailTaken       = "Email has been taken"
)

// CodeNoAccount permite al cliente distinguir "no registrado" de otros rechazos.
const CodeNoAccount = "no_account"

// Role 4 es el superadministrador sembrado al arrancar.
const RoleSuperAdmin = 4

// Credentials es el cuerpo del login; username acepta también el email.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair son el token de acceso, el de refresco y la expiración (unix) del primero.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Exp          int64  `json:"exp"`
}

// Session es la respuesta de login y refresh.
type Session struct {
	TokenPair
	User *User `json:"user"`
}

// TokenIssuer firma y verifica tokens que llevan al usuario (sin contraseña).
type TokenIssuer interface {
	Issue(u *User) (TokenPair, error)
	Verify(token string) (*User, error)
}

// PasswordHasher cifra y compara contraseñas.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// AdminSeed es la cuenta inicial del panel.
func AdminSeed() UserInput {
	username, email, password := "admin", "admin@email.com", "Test@123"
	first, last, phone := "Super", "Admin", "123"
	role := RoleSuperAdmin
	return UserInput{
		Username:  &username,
		Email:     &email,
		FirstName: &first,
		LastName:  &last,
		Password:  &password,
		Phone:     &phone,
		RoleID:    &role,
	}
}
