package commands

const DEFAULT_CONFIG = "config.ini"
