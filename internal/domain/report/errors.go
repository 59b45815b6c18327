package report

import "errors"

var (
	ErrSettingNotFound = errors.New("clinic setting not found")
)
