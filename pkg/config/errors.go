package config

import "errors"

var (
	ErrParsingConfig = errors.New("config: failed to parse environment")
	ErrDotenv        = errors.New("config: failed to read dotenv file")
)
