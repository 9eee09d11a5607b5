package commands

const (
	_etc = "/usr/local/etc/com.github.gsheets-loader"

	DEFAULT_CONFIG = _etc + "/config.ini"
)
