package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ginpocketbase/database"
	"ginpocketbase/models"
	"ginpocketbase/utils"
)

const backendTimeout = 10 * time.Second

// Controller carries the shared PocketBase session into the handlers. It is
// built once at startup and never mutated afterwards.
type Controller struct {
	pb *database.Client
}

func New(pb *database.Client) *Controller {
	return &Controller{pb: pb}
}

func (ctrl *Controller) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>HelloWorld</h1>"))
}

func (ctrl *Controller) CreateCubePhoto(c *gin.Context) {
	var req models.CreateCubePhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "data is in the wrong format"})
		return
	}

	if details := models.ValidateCreateRequest(&req); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": details, "message": "data is in the wrong format"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "no image file provided"})
		return
	}

	fileContent, err := file.Open()
	if err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	defer fileContent.Close()

	code, err := utils.NewDeleteCode()
	if err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	fields := req.Fields()
	fields["code"] = code

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	// Prefixing the stored filename with the code keeps it unique and
	// traceable back to the record's deletion credential.
	record, err := ctrl.pb.CreateRecord(ctx, fields, code+file.Filename, fileContent)
	if err != nil {
		ctrl.backendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "created",
		"body": gin.H{
			"createdRecord": models.MapCubePhoto(record, ctrl.pb.FileURL),
		},
	})
}

func (ctrl *Controller) GetCubePhotos(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	records, err := ctrl.pb.ListRecords(ctx, "-updated")
	if err != nil {
		ctrl.backendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"body": gin.H{
			"cubephotos": models.MapCubePhotos(records, ctrl.pb.FileURL),
		},
	})
}

func (ctrl *Controller) GetCubePhoto(c *gin.Context) {
	id := c.Param("id_cubephoto")

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	record, err := ctrl.pb.GetRecord(ctx, id)
	if err != nil {
		ctrl.backendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"body": gin.H{
			"cubephoto": models.MapCubePhoto(record, ctrl.pb.FileURL),
		},
	})
}

func (ctrl *Controller) DeleteCubePhoto(c *gin.Context) {
	id := c.Param("id_cubephoto")
	code, hasCode := c.GetQuery("code")

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	record, err := ctrl.pb.GetRecord(ctx, id)
	if err != nil {
		ctrl.backendError(c, err)
		return
	}

	if !hasCode || !utils.CompareCode(code, record.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "code missing or invalid for deletion"})
		return
	}

	if err := ctrl.pb.DeleteRecord(ctx, id); err != nil {
		ctrl.backendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
}

// backendError answers with the backend's own status and message when the
// backend reported the failure itself, and with 502 when the call never got
// a usable response.
func (ctrl *Controller) backendError(c *gin.Context, err error) {
	log.Println(err)

	var apiErr *database.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"message": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"message": "backend request failed"})
}
