package costing

import "errors"

// Çekirdek hesaplama hataları. Handler katmanı errors.Is ile eşleyip
// HTTP durum koduna çevirir (validasyon sınıfı -> 400).
var (
	// Birimin türü için gerekli dönüşüm katsayısı tanımsız veya sıfır
	ErrInvalidUnitConfig = errors.New("ölçü biriminin dönüşüm katsayısı tanımsız veya geçersiz")

	// Reçetenin nihai ağırlığı pozitif değil
	ErrInvalidRecipeWeight = errors.New("reçetenin nihai ağırlığı 0'dan büyük olmalı")

	// Fırıncı yüzdesi için un ağırlığı pozitif değil
	ErrInvalidFlourWeight = errors.New("un ağırlığı 0'dan büyük olmalı")

	// Fırıncı yüzdesi hesabı için un kategorisinden bir satır bulunamadı
	ErrNoFlourLine = errors.New("un (farináceos) kategorisinde bir hammadde satırı bulunamadı")

	// Payda sıfır: beklenen ağırlık, toplam fiyat veya satın alma miktarı 0
	ErrDivisionByZero = errors.New("sıfıra bölme: payda 0 olamaz")

	// Zorunlu bir alan eksik veya aralık dışı
	ErrMissingField = errors.New("zorunlu alan eksik veya geçersiz")
)
