package main

import (
	"madaris/core"
	"madaris/core/account"
)

// addAccount updates or creates an account.Account
func (cli *commandLine) addAccount(name, uname, email, schoolID, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	acc, err := cli.accSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		return err
	}
	if acc == nil && email != "" {
		if acc, err = cli.accSvc.GetByUsernameOrEmail(email); err != nil {
			return err
		}
	}
	if acc == nil {
		acc = &account.Account{
			Name:     name,
			Username: uname,
			Email:    email,
			Role:     account.RoleSchoolAdmin,
			SchoolID: schoolID,
		}
	}
	if isAdmin {
		acc.Role = account.RoleAdmin
		acc.SchoolID = ""
	}
	if err := acc.SetPassword(pwd); err != nil {
		return err
	}
	return cli.accSvc.Save(acc)
}
