package route

import (
	"github.com/gin-gonic/gin"

	"ginpocketbase/controller"
)

// Register wires every route of the gateway. There is no protected group:
// deletion is guarded inside the handler by the record's own code.
func Register(router *gin.Engine, ctrl *controller.Controller) {
	router.GET("/", ctrl.Home)

	api := router.Group("/api")
	api.POST("/cubephoto", ctrl.CreateCubePhoto)
	api.GET("/cubephoto", ctrl.GetCubePhotos)
	api.GET("/cubephoto/:id_cubephoto", ctrl.GetCubePhoto)
	api.DELETE("/cubephoto/:id_cubephoto", ctrl.DeleteCubePhoto)
}
