package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidColor        = errors.New("primary color must be a #RRGGBB hex value")
	ErrInvalidLogoURL      = errors.New("logo url must be an API path or an allowed https host")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrContractNotFound    = errors.New("contract not found")
	ErrOfferLetterNotFound = errors.New("offer letter not found")
	ErrJobNotFound         = errors.New("export job not found")
	ErrJobNotClaimed       = errors.New("export job is no longer claimed by this attempt")
	ErrUnknownExportKind   = errors.New("unknown export kind")
)
