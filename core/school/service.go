package school

import (
	"errors"

	"madaris/core"
)

var ErrNotFound = errors.New("school not found")

// AccountSyncer pushes refreshed school display info into the accounts that
// belong to a school. Implemented by the account service; injected to avoid
// a package cycle.
type AccountSyncer interface {
	SyncSchoolInfo(schoolID, name, logo string) error
}

type Service struct {
	schools  *core.Collection[School, *School]
	settings *core.Collection[Settings, *Settings]
	conf     *core.Config
	log      core.Logger
	accounts AccountSyncer
}

func NewService(store *core.Store, conf *core.Config, log core.Logger) *Service {
	return &Service{
		schools:  core.NewCollection[School, *School](store, "schools"),
		settings: core.NewCollection[Settings, *Settings](store, "school_settings"),
		conf:     conf,
		log:      log,
	}
}

// BindAccounts wires the account syncer; called once at assembly time.
func (svc *Service) BindAccounts(syncer AccountSyncer) { svc.accounts = syncer }

func (svc *Service) Query() ([]School, error) {
	return svc.schools.List()
}

// GetSchool returns the school with the given id, or nil when absent.
func (svc *Service) GetSchool(id string) (*School, error) {
	return svc.schools.Get(id)
}

// Save persists the school, assigning an id when new. The record is updated
// in place with id and timestamps.
func (svc *Service) Save(sch *School) error {
	if err := svc.schools.Upsert(sch); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (svc *Service) Delete(id string) error {
	if err := svc.schools.Delete(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SettingsFor returns the school's saved settings, falling back to defaults
// derived from the school record and the application config.
func (svc *Service) SettingsFor(schoolID string) (Settings, error) {
	all, err := svc.settings.List()
	if err != nil {
		return Settings{}, err
	}
	for _, st := range all {
		if st.SchoolID == schoolID {
			return st, nil
		}
	}
	return svc.defaultSettings(schoolID)
}

func (svc *Service) defaultSettings(schoolID string) (Settings, error) {
	st := Settings{
		SchoolID:                schoolID,
		DefaultInstallments:     svc.conf.DefaultInstallments,
		TuitionFeeCategory:      svc.conf.TuitionFeeCategory,
		TransportationFeeOneWay: svc.conf.TransportationFeeOneWay,
		TransportationFeeTwoWay: svc.conf.TransportationFeeTwoWay,
	}
	sch, err := svc.GetSchool(schoolID)
	if err != nil {
		return Settings{}, err
	}
	if sch != nil {
		st.Name = sch.Name
		st.Email = sch.Email
		st.Phone = sch.Phone
		st.Address = sch.Address
		st.Logo = sch.Logo
	}
	return st, nil
}

// SaveSettings persists the settings and pushes the display fields back into
// the School record and into every account of that school.
func (svc *Service) SaveSettings(schoolID string, st Settings) (Settings, error) {
	st.SchoolID = schoolID

	// replace any existing settings record for this school
	all, err := svc.settings.List()
	if err != nil {
		return Settings{}, err
	}
	st.RecordMeta = core.RecordMeta{}
	for _, prev := range all {
		if prev.SchoolID == schoolID {
			st.RecordMeta = prev.RecordMeta
			break
		}
	}
	if err := svc.settings.Upsert(&st); err != nil {
		return Settings{}, err
	}

	if sch, err := svc.GetSchool(schoolID); err != nil {
		return Settings{}, err
	} else if sch != nil {
		sch.Name = st.Name
		sch.Email = st.Email
		sch.Phone = st.Phone
		sch.Address = st.Address
		sch.Logo = st.Logo
		if err := svc.Save(sch); err != nil {
			return Settings{}, err
		}
	}

	if svc.accounts != nil {
		if err := svc.accounts.SyncSchoolInfo(schoolID, st.Name, st.Logo); err != nil {
			return Settings{}, err
		}
	}
	return st, nil
}
