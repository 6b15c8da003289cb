package transport

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ProfileRequest struct {
	FullName string `json:"full_name" validate:"max=200"`
	Phone    string `json:"phone"     validate:"max=50"`
	Company  string `json:"company"   validate:"max=200"`
}

type AddressRequest struct {
	Label      string `json:"label"       validate:"max=100"`
	Line1      string `json:"line1"       validate:"required,max=200"`
	Line2      string `json:"line2"       validate:"max=200"`
	City       string `json:"city"        validate:"required,max=100"`
	State      string `json:"state"       validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country"     validate:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

type ContactRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"max=50"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
