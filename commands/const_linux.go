package commands

const (
	_etc = "/usr/local/etc/gsheets-loader"

	DEFAULT_CONFIG = _etc + "/config.ini"
)
