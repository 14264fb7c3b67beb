package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"pastane-backend/internal/database"
	"pastane-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Bir audit log'u undo et
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ? AND user_id = ?", logID, userID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	// Stok hareketleri append-only defterdir: kayıt silinmez, ters hareket eklenir
	if log.EntityType == "stock_movement" {
		if err := compensateStockMovement(log); err != nil {
			return err
		}
	} else {
		switch log.Action {
		case models.AuditActionCreate:
			if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
				return fmt.Errorf("entity silinemedi: %w", err)
			}

		case models.AuditActionUpdate:
			if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
				return fmt.Errorf("entity geri yüklenemedi: %w", err)
			}

		case models.AuditActionDelete:
			if err := recreateEntity(log.EntityType, log.AfterData); err != nil {
				return fmt.Errorf("entity geri oluşturulamadı: %w", err)
			}

		default:
			return fmt.Errorf("bu işlem türü geri alınamaz")
		}
	}

	// Log'u işaretle
	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	// Undo işlemi için yeni bir log oluştur
	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

// compensateStockMovement - Stok hareketinin geri alınması: ters yönde yeni hareket
func compensateStockMovement(log models.AuditLog) error {
	if log.Action != models.AuditActionCreate {
		return fmt.Errorf("stok hareketi için sadece oluşturma geri alınabilir")
	}

	var movement models.StockMovement
	if err := json.Unmarshal([]byte(log.AfterData), &movement); err != nil {
		return fmt.Errorf("stok hareketi çözümlenemedi: %w", err)
	}

	reversed := models.StockMovement{
		UserID:      movement.UserID,
		ItemID:      movement.ItemID,
		ItemKind:    movement.ItemKind,
		Quantity:    movement.Quantity,
		Reason:      fmt.Sprintf("Geri alma: %s", movement.Reason),
		BatchNumber: movement.BatchNumber,
	}
	if movement.Direction == models.StockIn {
		reversed.Direction = models.StockOut
	} else {
		reversed.Direction = models.StockIn
	}

	return database.DB.Create(&reversed).Error
}

// deleteEntity - Entity'yi sil
func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "ingredient":
		return database.DB.Delete(&models.Ingredient{}, "id = ?", entityID).Error
	case "technical_sheet":
		if err := database.DB.Delete(&models.TechnicalSheetLine{}, "technical_sheet_id = ?", entityID).Error; err != nil {
			return err
		}
		return database.DB.Delete(&models.TechnicalSheet{}, "id = ?", entityID).Error
	case "production":
		return database.DB.Delete(&models.Production{}, "id = ?", entityID).Error
	case "sale":
		return database.DB.Delete(&models.Sale{}, "id = ?", entityID).Error
	case "product":
		if err := database.DB.Delete(&models.ProductPrice{}, "product_id = ?", entityID).Error; err != nil {
			return err
		}
		return database.DB.Delete(&models.Product{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// recreateEntity - Silinen entity'yi geri oluştur
func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "ingredient":
		var ingredient models.Ingredient
		if err := json.Unmarshal([]byte(dataJSON), &ingredient); err != nil {
			return err
		}
		ingredient.ID = 0 // Yeni entity oluştur
		ingredient.Unit = models.MeasurementUnit{}
		ingredient.Category = models.Category{}
		return database.DB.Create(&ingredient).Error

	case "technical_sheet":
		var sheet models.TechnicalSheet
		if err := json.Unmarshal([]byte(dataJSON), &sheet); err != nil {
			return err
		}
		sheet.ID = 0
		for i := range sheet.Lines {
			sheet.Lines[i].ID = 0
			sheet.Lines[i].TechnicalSheetID = 0
			sheet.Lines[i].Ingredient = models.Ingredient{}
		}
		return database.DB.Create(&sheet).Error

	case "production":
		var production models.Production
		if err := json.Unmarshal([]byte(dataJSON), &production); err != nil {
			return err
		}
		production.ID = 0
		production.TechnicalSheet = models.TechnicalSheet{}
		return database.DB.Create(&production).Error

	case "sale":
		var sale models.Sale
		if err := json.Unmarshal([]byte(dataJSON), &sale); err != nil {
			return err
		}
		sale.ID = 0
		sale.Product = models.Product{}
		return database.DB.Create(&sale).Error

	case "product":
		var product models.Product
		if err := json.Unmarshal([]byte(dataJSON), &product); err != nil {
			return err
		}
		product.ID = 0
		product.Category = models.Category{}
		for i := range product.Prices {
			product.Prices[i].ID = 0
			product.Prices[i].ProductID = 0
		}
		return database.DB.Create(&product).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// restoreEntity - Entity'yi önceki haline geri yükle (update)
func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "ingredient":
		var ingredient models.Ingredient
		if err := json.Unmarshal([]byte(dataJSON), &ingredient); err != nil {
			return err
		}
		return database.DB.Model(&models.Ingredient{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":              ingredient.Name,
			"purchase_quantity": ingredient.PurchaseQuantity,
			"price_per_unit":    ingredient.PricePerUnit,
			"unit_id":           ingredient.UnitID,
			"category_id":       ingredient.CategoryID,
			"supplier":          ingredient.Supplier,
			"storage_location":  ingredient.StorageLocation,
			"purchase_date":     ingredient.PurchaseDate,
			"expiry_date":       ingredient.ExpiryDate,
		}).Error

	case "technical_sheet":
		var sheet models.TechnicalSheet
		if err := json.Unmarshal([]byte(dataJSON), &sheet); err != nil {
			return err
		}
		// Satırları da önceki haline döndür: mevcutları sil, eskileri geri yaz
		if err := database.DB.Delete(&models.TechnicalSheetLine{}, "technical_sheet_id = ?", entityID).Error; err != nil {
			return err
		}
		for _, line := range sheet.Lines {
			line.ID = 0
			line.TechnicalSheetID = entityID
			line.Ingredient = models.Ingredient{}
			if err := database.DB.Create(&line).Error; err != nil {
				return err
			}
		}
		return database.DB.Model(&models.TechnicalSheet{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":               sheet.Name,
			"description":        sheet.Description,
			"preparation_time":   sheet.PreparationTime,
			"oven_temperature":   sheet.OvenTemperature,
			"instructions":       sheet.Instructions,
			"observations":       sheet.Observations,
			"final_weight_grams": sheet.FinalWeightGrams,
			"total_cost":         sheet.TotalCost,
			"cost_per_gram":      sheet.CostPerGram,
		}).Error

	case "production":
		var production models.Production
		if err := json.Unmarshal([]byte(dataJSON), &production); err != nil {
			return err
		}
		// BatchNumber bilinçli olarak güncellenmez: bir kez atanır, değişmez
		return database.DB.Model(&models.Production{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"technical_sheet_id":  production.TechnicalSheetID,
			"quantity_batches":    production.QuantityBatches,
			"actual_weight_grams": production.ActualWeightGrams,
			"losses":              production.Losses,
			"loss_percentage":     production.LossPercentage,
			"notes":               production.Notes,
			"production_date":     production.ProductionDate,
		}).Error

	case "sale":
		var sale models.Sale
		if err := json.Unmarshal([]byte(dataJSON), &sale); err != nil {
			return err
		}
		return database.DB.Model(&models.Sale{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"product_id":        sale.ProductID,
			"quantity":          sale.Quantity,
			"weight_grams":      sale.WeightGrams,
			"unit_price":        sale.UnitPrice,
			"total_price":       sale.TotalPrice,
			"cost_price":        sale.CostPrice,
			"profit":            sale.Profit,
			"profit_percentage": sale.ProfitPercentage,
			"channel":           sale.Channel,
			"notes":             sale.Notes,
			"sale_date":         sale.SaleDate,
		}).Error

	case "product":
		var product models.Product
		if err := json.Unmarshal([]byte(dataJSON), &product); err != nil {
			return err
		}
		if err := database.DB.Delete(&models.ProductPrice{}, "product_id = ?", entityID).Error; err != nil {
			return err
		}
		for _, price := range product.Prices {
			price.ID = 0
			price.ProductID = entityID
			if err := database.DB.Create(&price).Error; err != nil {
				return err
			}
		}
		return database.DB.Model(&models.Product{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":           product.Name,
			"average_weight": product.AverageWeight,
			"category_id":    product.CategoryID,
		}).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}
