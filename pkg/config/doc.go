// Package config loads pkgbasify settings.
//
// Sources are layered, later ones winning: the embedded defaults, the
// system file (/usr/local/etc/pkgbasify.toml, or the path given with
// --config), PKGBASIFY_* environment variables and finally command line
// overrides. Environment variables use a double underscore between section
// and key, so PKGBASIFY_REPO__NAME sets repo.name.
package config
