// Package config loads CLI settings from dotenv files and FORMWIZARD_*
// environment variables.
package config
