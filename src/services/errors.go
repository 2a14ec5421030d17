package services

// ServiceError is a domain error returned by the catalog services.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

const (
	ErrArtifactNotFound         ServiceError = "artifact not found"
	ErrDuplicateInventoryNumber ServiceError = "inventory number already in use"
	ErrCollectionNotFound       ServiceError = "collection not found"
	ErrCollectionInUse          ServiceError = "collection still holds artifacts"
	ErrPeriodNotFound           ServiceError = "period not found"
	ErrCultureNotFound          ServiceError = "culture not found"
	ErrDuplicateAudioGuide      ServiceError = "an audio guide already exists for this language"
	ErrSessionRequired          ServiceError = "session_id is required"
	ErrPayloadRequired          ServiceError = "qr_data is required"
	ErrInvalidInput             ServiceError = "invalid input"
	ErrInvalidCredentials       ServiceError = "invalid username or password"
	ErrUsernameTaken            ServiceError = "username already exists"
)
