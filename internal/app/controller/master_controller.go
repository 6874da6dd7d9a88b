package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
)

// MasterController 메뉴·재료·레시피·재고 마스터 데이터
type MasterController struct {
	menuService       *service.MenuService
	ingredientService *service.IngredientService
	recipeService     *service.RecipeService
	inventoryService  *service.InventoryService
}

func NewMasterController(
	menuService *service.MenuService,
	ingredientService *service.IngredientService,
	recipeService *service.RecipeService,
	inventoryService *service.InventoryService,
) *MasterController {
	return &MasterController{
		menuService:       menuService,
		ingredientService: ingredientService,
		recipeService:     recipeService,
		inventoryService:  inventoryService,
	}
}

// idParam URL의 :id 파라미터. 숫자가 아니면 400으로 응답하고 false.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 ID 형식입니다")
		return 0, false
	}
	return uint(id), true
}

// writeResponse 쓰기 결과 응답. 참조 무결성 거부는 409로 내려간다.
func writeResponse(c *gin.Context, outcome *service.WriteOutcome) {
	if outcome != nil && !outcome.OK {
		c.JSON(http.StatusConflict, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ==================== 메뉴 ====================

// GET /api/v1/menus
func (ctrl *MasterController) GetMenus(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	menus, err := ctrl.menuService.GetMenus(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus, "count": len(menus)})
}

// POST /api/v1/menus
func (ctrl *MasterController) CreateMenu(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req service.SaveMenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.menuService.CreateMenu(storeID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// PUT /api/v1/menus/:id
func (ctrl *MasterController) UpdateMenu(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	menuID, ok := idParam(c)
	if !ok {
		return
	}

	var req service.SaveMenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.menuService.UpdateMenu(storeID, menuID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// DELETE /api/v1/menus/:id
func (ctrl *MasterController) DeleteMenu(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)
	menuID, ok := idParam(c)
	if !ok {
		return
	}

	outcome, err := ctrl.menuService.DeleteMenu(storeID, menuID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	if outcome != nil && !outcome.OK {
		log.Info("Menu delete refused by references", map[string]interface{}{
			"menu_id":    menuID,
			"references": outcome.References,
		})
	}
	writeResponse(c, outcome)
}

// ==================== 재료 ====================

// GET /api/v1/ingredients
func (ctrl *MasterController) GetIngredients(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	ingredients, err := ctrl.ingredientService.GetIngredients(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

// POST /api/v1/ingredients
func (ctrl *MasterController) CreateIngredient(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req service.SaveIngredientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.ingredientService.CreateIngredient(storeID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// PUT /api/v1/ingredients/:id
func (ctrl *MasterController) UpdateIngredient(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	ingredientID, ok := idParam(c)
	if !ok {
		return
	}

	var req service.SaveIngredientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.ingredientService.UpdateIngredient(storeID, ingredientID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// DELETE /api/v1/ingredients/:id
func (ctrl *MasterController) DeleteIngredient(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	ingredientID, ok := idParam(c)
	if !ok {
		return
	}

	outcome, err := ctrl.ingredientService.DeleteIngredient(storeID, ingredientID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// ==================== 레시피 ====================

// GET /api/v1/recipes?menu_id=1
func (ctrl *MasterController) GetRecipes(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	if menuIDStr := c.Query("menu_id"); menuIDStr != "" {
		menuID, err := strconv.ParseUint(menuIDStr, 10, 32)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 menu_id 형식입니다")
			return
		}
		recipes, err := ctrl.recipeService.GetRecipesByMenu(storeID, uint(menuID))
		if err != nil {
			errors.RespondWithKind(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
		return
	}

	recipes, err := ctrl.recipeService.GetRecipes(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

// POST /api/v1/recipes
func (ctrl *MasterController) SaveRecipe(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req service.SaveRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.recipeService.SaveRecipe(storeID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// DELETE /api/v1/recipes/:id
func (ctrl *MasterController) DeleteRecipe(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	recipeID, ok := idParam(c)
	if !ok {
		return
	}

	outcome, err := ctrl.recipeService.DeleteRecipe(storeID, recipeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// ==================== 재고 ====================

// GET /api/v1/inventory
func (ctrl *MasterController) GetInventory(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	inventory, err := ctrl.inventoryService.GetInventory(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": inventory, "count": len(inventory)})
}

// POST /api/v1/inventory
func (ctrl *MasterController) SaveInventory(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req service.SaveInventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.inventoryService.SaveInventory(storeID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// GET /api/v1/inventory/low-stock
func (ctrl *MasterController) GetLowStock(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	items, err := ctrl.inventoryService.GetLowStock(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
