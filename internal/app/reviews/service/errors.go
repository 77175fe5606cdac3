package service

import "errors"

var (
	// Ошибки бизнес-логики, транслируемые в HTTP статусы в handler layer
	ErrInvalidToken       = errors.New("invalid or unknown token")
	ErrAlreadySubmitted   = errors.New("rating already submitted")
	ErrNoRating           = errors.New("no rating submitted for this request")
	ErrInvalidChannel     = errors.New("invalid delivery channel")
	ErrInvalidPlatform    = errors.New("invalid review platform")
	ErrNoDestination      = errors.New("contact has no destination for channel")
	ErrManifestNotFound   = errors.New("manifest not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrNoContacts         = errors.New("manifest has no contacts")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email already in use")
	ErrDriverExists       = errors.New("driver with this car number already exists")
	ErrNotFound           = errors.New("not found")
	ErrEmptyManifest      = errors.New("manifest file contains no rows")
)
