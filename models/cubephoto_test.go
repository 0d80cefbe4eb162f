package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() CreateCubePhotoRequest {
	return CreateCubePhotoRequest{
		Name:        "cube1",
		Title:       "TestTitle",
		X:           "1",
		Y:           "2",
		Z:           "3",
		Description: "",
	}
}

func TestValidateCreateRequestAccepts(t *testing.T) {
	cases := map[string]func(*CreateCubePhotoRequest){
		"minimal":              func(r *CreateCubePhotoRequest) {},
		"negative coordinates": func(r *CreateCubePhotoRequest) { r.X = "-4"; r.Y = "0"; r.Z = "-99" },
		"with description":     func(r *CreateCubePhotoRequest) { r.Description = "a small cube" },
		"max lengths":          func(r *CreateCubePhotoRequest) { r.Name = strings.Repeat("a", 100); r.Description = strings.Repeat("d", 500) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			require.Nil(t, ValidateCreateRequest(&req))
		})
	}
}

func TestValidateCreateRequestRejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(*CreateCubePhotoRequest)
		field  string
	}{
		"name missing":          {func(r *CreateCubePhotoRequest) { r.Name = "" }, "Name"},
		"name too short":        {func(r *CreateCubePhotoRequest) { r.Name = "ab" }, "Name"},
		"name too long":         {func(r *CreateCubePhotoRequest) { r.Name = strings.Repeat("a", 101) }, "Name"},
		"name not alphanumeric": {func(r *CreateCubePhotoRequest) { r.Name = "cube 1" }, "Name"},
		"title missing":         {func(r *CreateCubePhotoRequest) { r.Title = "" }, "Title"},
		"title not alphanum":    {func(r *CreateCubePhotoRequest) { r.Title = "a-title!" }, "Title"},
		"x missing":             {func(r *CreateCubePhotoRequest) { r.X = "" }, "X"},
		"x not an integer":      {func(r *CreateCubePhotoRequest) { r.X = "abc" }, "X"},
		"y decimal":             {func(r *CreateCubePhotoRequest) { r.Y = "1.5" }, "Y"},
		"z not an integer":      {func(r *CreateCubePhotoRequest) { r.Z = "3z" }, "Z"},
		"description too short": {func(r *CreateCubePhotoRequest) { r.Description = "abcd" }, "Description"},
		"description too long":  {func(r *CreateCubePhotoRequest) { r.Description = strings.Repeat("d", 501) }, "Description"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			details := ValidateCreateRequest(&req)
			require.NotNil(t, details)
			require.Contains(t, details, tc.field)
		})
	}
}

func TestFieldsOmitsEmptyDescription(t *testing.T) {
	req := validRequest()
	fields := req.Fields()
	require.Equal(t, map[string]string{
		"name": "cube1", "title": "TestTitle", "x": "1", "y": "2", "z": "3",
	}, fields)

	req.Description = "a small cube"
	require.Equal(t, "a small cube", req.Fields()["description"])
}

func TestMapCubePhoto(t *testing.T) {
	record := CubePhoto{
		ID:             "rec123",
		CollectionID:   "col456",
		CollectionName: "cubephotos",
		Name:           "cube1",
		Title:          "TestTitle",
		X:              1,
		Y:              2,
		Z:              -3,
		Description:    "a small cube",
		Code:           "s3cretC0de",
		Pic:            "s3cretC0dephoto.png",
		Created:        "2023-01-01 10:00:00.000Z",
		Updated:        "2023-01-02 10:00:00.000Z",
	}

	fileURL := func(id, fileName string) string {
		return "http://pb.local/api/files/cubephotos/" + id + "/" + fileName
	}

	mapped := MapCubePhoto(record, fileURL)
	require.Equal(t, "http://pb.local/api/files/cubephotos/rec123/s3cretC0dephoto.png", mapped.Pic)
	require.Equal(t, record.ID, mapped.ID)
	require.Equal(t, record.Name, mapped.Name)
	require.Equal(t, record.X, mapped.X)
	require.Equal(t, record.Z, mapped.Z)
	require.Equal(t, record.Updated, mapped.Updated)

	raw, err := json.Marshal(mapped)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "s3cretC0de\"")
	require.NotContains(t, string(raw), `"code"`)
}

func TestMapCubePhotosKeepsOrder(t *testing.T) {
	records := []CubePhoto{
		{ID: "b", Pic: "b.png", Updated: "2023-01-02 10:00:00.000Z"},
		{ID: "a", Pic: "a.png", Updated: "2023-01-01 10:00:00.000Z"},
	}
	fileURL := func(id, fileName string) string { return id + "/" + fileName }

	mapped := MapCubePhotos(records, fileURL)
	require.Len(t, mapped, 2)
	require.Equal(t, "b", mapped[0].ID)
	require.Equal(t, "b/b.png", mapped[0].Pic)
	require.Equal(t, "a", mapped[1].ID)

	require.Empty(t, MapCubePhotos(nil, fileURL))
}
