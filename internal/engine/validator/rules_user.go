package validator

import (
	"path"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// checkAccountName reports why name cannot be used for an account.
func checkAccountName(name string, r report) bool {
	if !usernameRe.MatchString(name) {
		r.errorf("invalid username specified")
		return false
	}
	if in(reservedUsernames, name) {
		r.errorf("reserved system username")
		return false
	}
	return true
}

func checkUsername(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	name := e.Value()
	if !checkAccountName(name, r) {
		return
	}
	if _, dup := cc.mark(e.Key, name, e.Line); dup {
		r.errorf("duplicate value for key 'username'")
		return
	}
	if cc.inc(e.Key, "") > maxUsers {
		r.errorf("too many users")
	}
}

// perUser reports a second entry of the same key for one account.
func perUser(cc *checkContext, e domain.Entry, r report) bool {
	if _, dup := cc.mark(e.Key, e.Token(0), e.Line); dup {
		r.errorf("duplicate value for key '%s'", e.Key)
		return false
	}
	return true
}

func checkUserAlias(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	perUser(cc, e, r)
}

func checkUserPW(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !perUser(cc, e, r) {
		return
	}
	if !isCrypt(e.Token(1)) {
		r.errorf("value is not a crypt-style encrypted passphrase")
	}
}

func checkUserIcon(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !perUser(cc, e, r) {
		return
	}
	if icon := e.Token(1); !path.IsAbs(icon) && !isURL(icon) {
		r.errorf("path must be absolute path or valid URL")
	}
}

func checkUserGroups(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	user := e.Token(0)
	for _, group := range strings.Split(e.Token(1), ",") {
		if len(group) > maxGroupName {
			r.errorf("group name exceeds maximum length")
			return
		}
		if !in(systemGroups, group) {
			r.errorf("group '%s' is not a valid group", group)
			return
		}
		if !cc.addToSet(e.Key, user, group) {
			r.errorf("duplicate group name specified")
			return
		}
	}
	if cc.setSize(e.Key, user) > maxGroupsPerUser {
		if _, reported := cc.mark(e.Key, user, e.Line); !reported {
			r.errorf("%s is a member of more than %d groups", user, maxGroupsPerUser)
		}
	}
}

func checkAutologin(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	checkAccountName(e.Value(), r)
}
