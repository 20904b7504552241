package account

import (
	"errors"

	"github.com/volatiletech/null/v8"

	"madaris/core"
	"madaris/core/school"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// SchoolDirectory resolves school references for denormalization.
type SchoolDirectory interface {
	GetSchool(id string) (*school.School, error)
}

type Service struct {
	accounts *core.Collection[Account, *Account]
	schools  SchoolDirectory
	log      core.Logger
}

func NewService(store *core.Store, schools SchoolDirectory, log core.Logger) *Service {
	return &Service{
		accounts: core.NewCollection[Account, *Account](store, "accounts"),
		schools:  schools,
		log:      log,
	}
}

// Query returns all accounts, or only the given school's when schoolID is set.
func (svc *Service) Query(schoolID string) ([]Account, error) {
	accs, err := svc.accounts.List()
	if err != nil {
		return nil, err
	}
	if schoolID == "" {
		return accs, nil
	}
	filtered := accs[:0]
	for _, acc := range accs {
		if acc.SchoolID == schoolID {
			filtered = append(filtered, acc)
		}
	}
	return filtered, nil
}

// Get returns the account with the given id, or nil when absent.
func (svc *Service) Get(id string) (*Account, error) {
	return svc.accounts.Get(id)
}

func (svc *Service) GetByUsernameOrEmail(uname string) (*Account, error) {
	uname = core.CleanString(uname, true /* lower */)
	accs, err := svc.accounts.List()
	if err != nil {
		return nil, err
	}
	for _, acc := range accs {
		if acc.Username == uname || acc.Email == uname {
			a := acc
			return &a, nil
		}
	}
	return nil, nil
}

// Save persists the account, refreshing the denormalized school name/logo
// from the School record. On update, a missing password keeps the stored
// hash.
func (svc *Service) Save(acc *Account) error {
	if acc.SchoolID != "" && svc.schools != nil {
		sch, err := svc.schools.GetSchool(acc.SchoolID)
		if err != nil {
			return err
		}
		if sch != nil {
			acc.SchoolName = sch.Name
			acc.SchoolLogo = sch.Logo
		}
	}

	if acc.ID != "" && len(acc.PasswordHash) == 0 {
		prev, err := svc.accounts.Get(acc.ID)
		if err != nil {
			return err
		}
		if prev != nil {
			acc.PasswordHash = prev.PasswordHash
		}
	}

	if err := svc.accounts.Upsert(acc); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (svc *Service) Delete(id string) error {
	if err := svc.accounts.Delete(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Authenticate checks the credentials and stamps LastLogin on success.
func (svc *Service) Authenticate(uname, pwd string) (*Account, error) {
	acc, err := svc.GetByUsernameOrEmail(uname)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}
	if err := acc.CheckPassword(pwd); err != nil {
		return nil, ErrInvalidCredentials
	}

	acc.LastLogin = null.TimeFrom(core.Now())
	if err := svc.accounts.Upsert(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// SyncSchoolInfo implements school.AccountSyncer.
func (svc *Service) SyncSchoolInfo(schoolID, name, logo string) error {
	accs, err := svc.Query(schoolID)
	if err != nil {
		return err
	}
	for i := range accs {
		accs[i].SchoolName = name
		accs[i].SchoolLogo = logo
		if err := svc.accounts.Upsert(&accs[i]); err != nil {
			return err
		}
	}
	return nil
}
