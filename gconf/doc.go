/*
Package gconf provides a toolset for managing a single configuration entity
per extension.

Each package that wants a runtime configuration keeps exactly one
configuration object in the database, stored under a well known key derived
from the package name. Updating the configuration is done by overwriting the
singleton with a new, validated value.

To use gconf in a package, declare a configuration entity that implements the
Configuration interface and initialize it during genesis with InitConfig.
*/
package gconf
