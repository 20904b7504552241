package account

import (
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"madaris/core"
)

// Roles
const (
	RoleAdmin        = "admin"
	RoleSchoolAdmin  = "schoolAdmin"
	RoleGradeManager = "gradeManager"
)

var AllRoles = []string{RoleAdmin, RoleSchoolAdmin, RoleGradeManager}

type Account struct {
	core.RecordMeta
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"passwordHash,omitempty"`
	Role         string    `json:"role"`
	SchoolID     string    `json:"schoolId,omitempty"` // absent for admin
	SchoolName   string    `json:"schoolName,omitempty"`
	SchoolLogo   string    `json:"schoolLogo,omitempty"`
	GradeLevels  []string  `json:"gradeLevels,omitempty"` // restriction set; only meaningful for gradeManager
	LastLogin    null.Time `json:"lastLogin"`
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

func (a *Account) IsAdmin() bool        { return a.Role == RoleAdmin }
func (a *Account) IsSchoolAdmin() bool  { return a.Role == RoleSchoolAdmin }
func (a *Account) IsGradeManager() bool { return a.Role == RoleGradeManager }

// ManagesGrade reports whether the account may see the given grade level.
// Non grade-manager roles are unrestricted.
func (a *Account) ManagesGrade(grade string) bool {
	if !a.IsGradeManager() {
		return true
	}
	for _, g := range a.GradeLevels {
		if g == grade {
			return true
		}
	}
	return false
}

// Person identifies the account to the error tracker.
func (a *Account) Person() (id, username, email string) {
	return a.ID, a.Username, a.Email
}

// NewAccount contains information needed to create a new Account.
type NewAccount struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Username    string   `json:"username" validate:"required,min=4,alphanum_"`
	Password    string   `json:"password" validate:"required"`
	Role        string   `json:"role" validate:"required,accountrole"`
	SchoolID    string   `json:"schoolId" validate:"required_unless=Role admin"`
	GradeLevels []string `json:"gradeLevels" validate:"omitempty,dive,gradelevel"`
}

func (na *NewAccount) Validate() error {
	na.Name = core.CleanString(na.Name)
	na.Username = core.CleanString(na.Username, true /* lower */)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return core.TranslateError(core.Validate.Struct(na))
}

// UpdateAccount defines what information may be provided to modify an
// existing Account. A blank password keeps the stored one.
type UpdateAccount struct {
	Name        string   `json:"name"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Username    string   `json:"username" validate:"omitempty,min=4,alphanum_"`
	Password    string   `json:"password" validate:"omitempty"`
	Role        string   `json:"role" validate:"omitempty,accountrole"`
	SchoolID    string   `json:"schoolId"`
	GradeLevels []string `json:"gradeLevels" validate:"omitempty,dive,gradelevel"`
}

func (ua *UpdateAccount) Validate() error {
	ua.Name = core.CleanString(ua.Name)
	ua.Username = core.CleanString(ua.Username, true /* lower */)
	ua.Email = core.CleanString(ua.Email, true /* lower */)
	return core.TranslateError(core.Validate.Struct(ua))
}
