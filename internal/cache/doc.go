// Package cache maps page URLs onto the on-disk layout written by an Nginx
// fastcgi cache (key "$scheme$request_method$host$request_uri", levels=1:2)
// and removes the resulting artifacts. Files live at
// <CachePath>/<last hex char>/<two hex chars before it>/<md5 key> without any
// extension. Deletion goes through the Deleter interface so that callers can
// swap the real filesystem for an in-memory afero.Fs in tests.
package cache
