package models

// CubePhoto is the raw record shape held by the PocketBase "cubephotos"
// collection. Code and Pic never leave this process as-is: responses go
// through MapCubePhoto first.
type CubePhoto struct {
	ID             string `json:"id"`
	CollectionID   string `json:"collectionId,omitempty"`
	CollectionName string `json:"collectionName,omitempty"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Z              int    `json:"z"`
	Description    string `json:"description"`
	Code           string `json:"code"`
	Pic            string `json:"pic"` // stored filename, assigned by the backend
	Created        string `json:"created,omitempty"`
	Updated        string `json:"updated,omitempty"`
}

// CubePhotoResponse is the public shape: the delete code is stripped and pic
// is the fully qualified file URL instead of the raw filename.
type CubePhotoResponse struct {
	ID             string `json:"id"`
	CollectionID   string `json:"collectionId,omitempty"`
	CollectionName string `json:"collectionName,omitempty"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Z              int    `json:"z"`
	Description    string `json:"description"`
	Pic            string `json:"pic"`
	Created        string `json:"created,omitempty"`
	Updated        string `json:"updated,omitempty"`
}

// CreateCubePhotoRequest carries the multipart form fields of a create call.
// X, Y and Z stay strings here: they arrive as form values and are forwarded
// as form values, the intstring rule only proves they parse as integers.
type CreateCubePhotoRequest struct {
	Name        string `form:"name" validate:"required,alphanum,min=3,max=100"`
	Title       string `form:"title" validate:"required,alphanum,min=3,max=100"`
	X           string `form:"x" validate:"required,intstring"`
	Y           string `form:"y" validate:"required,intstring"`
	Z           string `form:"z" validate:"required,intstring"`
	Description string `form:"description" validate:"omitempty,min=5,max=500"`
}

// Fields returns the form fields to forward to the backend, keyed by the
// collection's field names. Description is only set when the client sent it.
func (r *CreateCubePhotoRequest) Fields() map[string]string {
	fields := map[string]string{
		"name":  r.Name,
		"title": r.Title,
		"x":     r.X,
		"y":     r.Y,
		"z":     r.Z,
	}
	if r.Description != "" {
		fields["description"] = r.Description
	}
	return fields
}

// MapCubePhoto builds the public response for one record. fileURL turns the
// record id and stored filename into an absolute URL.
func MapCubePhoto(record CubePhoto, fileURL func(id, fileName string) string) CubePhotoResponse {
	return CubePhotoResponse{
		ID:             record.ID,
		CollectionID:   record.CollectionID,
		CollectionName: record.CollectionName,
		Name:           record.Name,
		Title:          record.Title,
		X:              record.X,
		Y:              record.Y,
		Z:              record.Z,
		Description:    record.Description,
		Pic:            fileURL(record.ID, record.Pic),
		Created:        record.Created,
		Updated:        record.Updated,
	}
}

// MapCubePhotos applies MapCubePhoto to every element of a list result.
func MapCubePhotos(records []CubePhoto, fileURL func(id, fileName string) string) []CubePhotoResponse {
	mapped := make([]CubePhotoResponse, 0, len(records))
	for _, record := range records {
		mapped = append(mapped, MapCubePhoto(record, fileURL))
	}
	return mapped
}
