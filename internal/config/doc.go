// Package config loads blogkit settings with viper from defaults, an
// optional config file and BLOGKIT_* environment variables, in that order
// of precedence from lowest to highest.
package config
