package storage

import "github.com/amoghbhat/spence/internal/model"

// DefaultCategories returns the built-in category set seeded at first run.
// The slice order is fixed: the category matcher breaks keyword-count ties
// in favor of earlier entries.
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			Name: "Food & Dining",
			Keywords: []string{
				"food", "restaurant", "cafe", "pizza", "burger", "meal",
				"dinner", "lunch", "breakfast", "snack", "coffee", "tea",
				"zomato", "swiggy", "dominos", "mcdonald", "kfc", "subway",
				"biryani", "dosa", "samosa", "paratha", "roti", "rice",
			},
			IsDefault: true,
		},
		{
			Name: "Transport",
			Keywords: []string{
				"uber", "ola", "taxi", "bus", "train", "metro", "auto",
				"petrol", "fuel", "diesel", "parking", "toll", "rickshaw",
				"flight", "plane", "airport", "railway", "station",
				"bike", "car", "vehicle", "transport",
			},
			IsDefault: true,
		},
		{
			Name: "Shopping",
			Keywords: []string{
				"amazon", "flipkart", "myntra", "ajio", "clothes", "shirt",
				"shoes", "shopping", "mall", "store", "dress", "jeans",
				"electronics", "mobile", "laptop", "headphones", "book",
				"groceries", "vegetables", "fruits", "market", "supermarket",
			},
			IsDefault: true,
		},
		{
			Name: "Entertainment",
			Keywords: []string{
				"movie", "cinema", "netflix", "amazon prime", "spotify",
				"youtube", "game", "concert", "party", "club", "bar",
				"theatre", "show", "music", "subscription", "streaming",
				"book", "magazine", "hobby", "sports", "gym",
			},
			IsDefault: true,
		},
		{
			Name: "Bills & Utilities",
			Keywords: []string{
				"electricity", "water", "gas", "internet", "wifi", "phone",
				"mobile", "recharge", "bill", "rent", "maintenance",
				"insurance", "loan", "emi", "credit card", "bank",
				"utility", "service", "subscription",
			},
			IsDefault: true,
		},
		{
			Name: "Health & Medical",
			Keywords: []string{
				"doctor", "medicine", "hospital", "pharmacy", "health",
				"medical", "clinic", "appointment", "checkup", "treatment",
				"surgery", "dental", "eye", "test", "lab", "report",
				"vitamin", "supplement", "first aid", "emergency",
			},
			IsDefault: true,
		},
		{
			Name: "Education",
			Keywords: []string{
				"school", "college", "university", "course", "class",
				"tuition", "coaching", "book", "study", "exam", "fee",
				"education", "learning", "online course", "certification",
				"training", "workshop", "seminar",
			},
			IsDefault: true,
		},
		{
			Name: "Personal Care",
			Keywords: []string{
				"salon", "haircut", "spa", "massage", "cosmetics", "makeup",
				"skincare", "shampoo", "soap", "toothbrush", "personal",
				"grooming", "beauty", "parlour", "barber",
			},
			IsDefault: true,
		},
		{
			Name: "Gifts & Donations",
			Keywords: []string{
				"gift", "present", "birthday", "anniversary", "wedding",
				"donation", "charity", "temple", "church", "mosque",
				"festival", "celebration", "party", "occasion",
			},
			IsDefault: true,
		},
		{
			Name: model.FallbackCategory,
			Keywords: []string{
				"other", "misc", "miscellaneous", "random", "general",
				"unknown", "cash", "atm", "withdrawal", "transfer",
			},
			IsDefault: true,
		},
	}
}
