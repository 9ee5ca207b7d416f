package categories

import "souqah-backend/internal/models"

// DefaultCategories is the launch taxonomy. Seed only applies it when the
// categories table is empty, so production edits survive restarts.
func DefaultCategories() []models.Category {
	return []models.Category{
		{
			Slug: "cars", NameAr: "سيارات", NameEn: "Cars", Icon: "car", SortOrder: 1,
			Subcategories: []models.Subcategory{
				{Slug: "cars-for-sale", NameAr: "سيارات للبيع", NameEn: "Cars for Sale"},
				{Slug: "car-rental", NameAr: "تأجير سيارات", NameEn: "Car Rental"},
				{Slug: "car-parts", NameAr: "قطع غيار", NameEn: "Car Parts"},
				{Slug: "motorcycles", NameAr: "دراجات نارية", NameEn: "Motorcycles"},
			},
		},
		{
			Slug: "real-estate", NameAr: "عقارات", NameEn: "Real Estate", Icon: "building", SortOrder: 2,
			Subcategories: []models.Subcategory{
				{Slug: "apartments-for-rent", NameAr: "شقق للإيجار", NameEn: "Apartments for Rent"},
				{Slug: "apartments-for-sale", NameAr: "شقق للبيع", NameEn: "Apartments for Sale"},
				{Slug: "villas", NameAr: "فلل", NameEn: "Villas"},
				{Slug: "land", NameAr: "أراضي", NameEn: "Land"},
				{Slug: "commercial", NameAr: "عقارات تجارية", NameEn: "Commercial"},
			},
		},
		{
			Slug: "electronics", NameAr: "إلكترونيات", NameEn: "Electronics", Icon: "smartphone", SortOrder: 3,
			Subcategories: []models.Subcategory{
				{Slug: "mobiles", NameAr: "جوالات", NameEn: "Mobiles"},
				{Slug: "computers", NameAr: "كمبيوترات", NameEn: "Computers"},
				{Slug: "tvs", NameAr: "تلفزيونات", NameEn: "TVs"},
				{Slug: "gaming", NameAr: "ألعاب فيديو", NameEn: "Gaming"},
			},
		},
		{
			Slug: "furniture", NameAr: "أثاث", NameEn: "Furniture", Icon: "sofa", SortOrder: 4,
			Subcategories: []models.Subcategory{
				{Slug: "home-furniture", NameAr: "أثاث منزلي", NameEn: "Home Furniture"},
				{Slug: "office-furniture", NameAr: "أثاث مكتبي", NameEn: "Office Furniture"},
				{Slug: "appliances", NameAr: "أجهزة منزلية", NameEn: "Appliances"},
			},
		},
		{
			Slug: "jobs", NameAr: "وظائف", NameEn: "Jobs", Icon: "briefcase", SortOrder: 5,
			Subcategories: []models.Subcategory{
				{Slug: "full-time", NameAr: "دوام كامل", NameEn: "Full Time"},
				{Slug: "part-time", NameAr: "دوام جزئي", NameEn: "Part Time"},
				{Slug: "freelance", NameAr: "عمل حر", NameEn: "Freelance"},
			},
		},
		{
			Slug: "services", NameAr: "خدمات", NameEn: "Services", Icon: "wrench", SortOrder: 6,
			Subcategories: []models.Subcategory{
				{Slug: "maintenance", NameAr: "صيانة", NameEn: "Maintenance"},
				{Slug: "cleaning", NameAr: "تنظيف", NameEn: "Cleaning"},
				{Slug: "moving", NameAr: "نقل عفش", NameEn: "Moving"},
				{Slug: "tutoring", NameAr: "دروس خصوصية", NameEn: "Tutoring"},
			},
		},
		{
			Slug: "fashion", NameAr: "أزياء", NameEn: "Fashion", Icon: "shirt", SortOrder: 7,
			Subcategories: []models.Subcategory{
				{Slug: "mens", NameAr: "رجالي", NameEn: "Men's"},
				{Slug: "womens", NameAr: "نسائي", NameEn: "Women's"},
				{Slug: "kids", NameAr: "أطفال", NameEn: "Kids"},
				{Slug: "watches", NameAr: "ساعات", NameEn: "Watches"},
			},
		},
		{
			Slug: "animals", NameAr: "حيوانات", NameEn: "Animals", Icon: "bird", SortOrder: 8,
			Subcategories: []models.Subcategory{
				{Slug: "sheep", NameAr: "أغنام", NameEn: "Sheep"},
				{Slug: "camels", NameAr: "إبل", NameEn: "Camels"},
				{Slug: "birds", NameAr: "طيور", NameEn: "Birds"},
				{Slug: "cats", NameAr: "قطط", NameEn: "Cats"},
			},
		},
		{
			Slug: "other", NameAr: "أخرى", NameEn: "Other", Icon: "grid", SortOrder: 9,
			Subcategories: []models.Subcategory{
				{Slug: "misc", NameAr: "متنوع", NameEn: "Miscellaneous"},
			},
		},
	}
}
