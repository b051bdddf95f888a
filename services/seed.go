package services

import (
	"log"

	"kasif-platform/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SurahList is the static memorization catalog, short surahs first, then
// Fatiha, then the medium ones. Ids are slugs of the Turkish titles.
var SurahList = buildSurahList([]struct {
	Title  string
	Number int
}{
	{"Nas Suresi", 114},
	{"Felak Suresi", 113},
	{"İhlas Suresi", 112},
	{"Tebbet Suresi", 111},
	{"Nasr Suresi", 110},
	{"Kafirun Suresi", 109},
	{"Kevser Suresi", 108},
	{"Maun Suresi", 107},
	{"Kureyş Suresi", 106},
	{"Fil Suresi", 105},
	{"Hümeze Suresi", 104},
	{"Asr Suresi", 103},
	{"Tekasür Suresi", 102},
	{"Karia Suresi", 101},
	{"Adiyat Suresi", 100},
	{"Zilzal Suresi", 99},
	{"Beyyine Suresi", 98},
	{"Kadir Suresi", 97},
	{"Alak Suresi", 96},
	{"Tin Suresi", 95},
	{"İnşirah Suresi", 94},
	{"Duha Suresi", 93},
	{"Fatiha Suresi", 1},
	{"Mülk (Tebareke)", 67},
	{"Nebe (Amme)", 78},
	{"Buruc Suresi", 85},
	{"Tarık Suresi", 86},
	{"Leyl Suresi", 92},
})

func buildSurahList(entries []struct {
	Title  string
	Number int
}) []models.Surah {
	out := make([]models.Surah, len(entries))
	for i, e := range entries {
		out[i] = models.Surah{ID: slug.Make(e.Title), Title: e.Title, Number: e.Number}
	}
	return out
}

// SeedCatalogs populates the task, market, badge and announcement catalogs
// when their tables are empty, so a fresh deployment starts with usable
// content instead of blank screens.
func SeedCatalogs(db *gorm.DB) error {
	if err := seedIfEmpty(db, &models.WeeklyTask{}, func() error {
		return db.Create([]models.WeeklyTask{
			{Title: "Cuma Namazına Katılım", Reward: 150, Currency: models.CurrencyNP, Target: 1},
			{Title: "Yasin Suresi Okuması", Reward: 200, Currency: models.CurrencyGP, Target: 1},
		}).Error
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &models.MarketItem{}, func() error {
		return db.Create([]models.MarketItem{
			{ID: slug.Make("50TL Kantin Çeki"), Title: "50TL Kantin Çeki", Price: 500, Currency: models.CurrencyGP, Icon: "🍔", Description: "Okul kantininde geçerli.", Stock: 10, ClassCode: "1453"},
			{ID: slug.Make("Serbest Kıyafet Günü"), Title: "Serbest Kıyafet Günü", Price: 1000, Currency: models.CurrencyNP, Icon: "👕", Description: "Bir gün serbest kıyafet hakkı.", Stock: 5, ClassCode: "1453"},
			{ID: slug.Make("Halı Saha Maçı"), Title: "Halı Saha Maçı", Price: 750, Currency: models.CurrencyGP, Icon: "⚽", Description: "Arkadaşlarla maç organizasyonu.", Stock: 20, ClassCode: "1453"},
			{ID: slug.Make("D&R Hediye Kartı"), Title: "D&R Hediye Kartı", Price: 1500, Currency: models.CurrencyNP, Icon: "📚", Description: "İstediğin bir kitap için.", Stock: 3, ClassCode: "1453"},
		}).Error
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &models.Badge{}, func() error {
		return db.Create([]models.Badge{
			{ID: slug.Make("İstikrar Abidesi"), Title: "İstikrar Abidesi", Icon: "🕌", Description: "5 Vakit namazını eksiksiz kılanlar.", Currency: models.CurrencyNP, Value: 100},
			{ID: slug.Make("Hafız Adayı"), Title: "Hafız Adayı", Icon: "📖", Description: "Ezberlerini en hızlı tamamlayan.", Currency: models.CurrencyGP, Value: 150},
			{ID: slug.Make("Sabah Yıldızı"), Title: "Sabah Yıldızı", Icon: "✨", Description: "Sabah namazı buluşmalarına katılan.", Currency: models.CurrencyNP, Value: 50},
			{ID: slug.Make("Safın Öncüsü"), Title: "Safın Öncüsü", Icon: "🤲", Description: "Sürekli cemaatle kılanlar.", Currency: models.CurrencyNP, Value: 75},
		}).Error
	}); err != nil {
		return err
	}

	return seedIfEmpty(db, &models.Announcement{}, func() error {
		return db.Create(&models.Announcement{
			Title:     "Dönem Başlangıcı",
			Message:   "Yeni eğitim döneminde başarılar dileriz.",
			Date:      "01.09.2024",
			ClassCode: "1453",
		}).Error
	})
}

func seedIfEmpty(db *gorm.DB, model interface{}, seed func() error) error {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := seed(); err != nil {
		return err
	}
	log.Printf("🌱 Seeded %T catalog", model)
	return nil
}
