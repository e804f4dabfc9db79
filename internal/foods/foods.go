// Package foods is the built-in database of common foods offered in the
// quick-select entry mode.
package foods

import "github.com/kidandcat/diametrics/internal/model"

type Food struct {
	Name       string
	PerServing model.Macros
}

var database = []Food{
	{"Chicken Breast (100g)", model.Macros{Carbs: 0, Protein: 31, Fat: 3.6, Fiber: 0, Calories: 165}},
	{"Salmon (100g)", model.Macros{Carbs: 0, Protein: 25, Fat: 13, Fiber: 0, Calories: 208}},
	{"Eggs (2 large)", model.Macros{Carbs: 1, Protein: 13, Fat: 10, Fiber: 0, Calories: 143}},
	{"Greek Yogurt (1 cup)", model.Macros{Carbs: 9, Protein: 17, Fat: 5, Fiber: 0, Calories: 146}},
	{"Tofu (100g)", model.Macros{Carbs: 2, Protein: 8, Fat: 4, Fiber: 1, Calories: 76}},
	{"Brown Rice (1 cup cooked)", model.Macros{Carbs: 45, Protein: 5, Fat: 2, Fiber: 4, Calories: 218}},
	{"Quinoa (1 cup cooked)", model.Macros{Carbs: 39, Protein: 8, Fat: 4, Fiber: 5, Calories: 222}},
	{"Whole Wheat Bread (2 slices)", model.Macros{Carbs: 24, Protein: 8, Fat: 2, Fiber: 4, Calories: 140}},
	{"Oatmeal (1 cup cooked)", model.Macros{Carbs: 27, Protein: 6, Fat: 3, Fiber: 4, Calories: 154}},
	{"Sweet Potato (medium)", model.Macros{Carbs: 26, Protein: 2, Fat: 0, Fiber: 4, Calories: 112}},
	{"Broccoli (1 cup)", model.Macros{Carbs: 6, Protein: 3, Fat: 0, Fiber: 2, Calories: 31}},
	{"Spinach (1 cup)", model.Macros{Carbs: 1, Protein: 1, Fat: 0, Fiber: 1, Calories: 7}},
	{"Mixed Salad (2 cups)", model.Macros{Carbs: 4, Protein: 2, Fat: 0, Fiber: 2, Calories: 20}},
	{"Apple (medium)", model.Macros{Carbs: 25, Protein: 0, Fat: 0, Fiber: 4, Calories: 95}},
	{"Banana (medium)", model.Macros{Carbs: 27, Protein: 1, Fat: 0, Fiber: 3, Calories: 105}},
	{"Berries (1 cup)", model.Macros{Carbs: 14, Protein: 1, Fat: 0, Fiber: 4, Calories: 84}},
	{"Avocado (half)", model.Macros{Carbs: 9, Protein: 2, Fat: 15, Fiber: 7, Calories: 160}},
	{"Almonds (handful/28g)", model.Macros{Carbs: 6, Protein: 6, Fat: 14, Fiber: 4, Calories: 164}},
	{"Olive Oil (1 tbsp)", model.Macros{Carbs: 0, Protein: 0, Fat: 14, Fiber: 0, Calories: 119}},
	{"Protein Shake", model.Macros{Carbs: 5, Protein: 25, Fat: 2, Fiber: 1, Calories: 140}},
	{"Peanut Butter (2 tbsp)", model.Macros{Carbs: 8, Protein: 8, Fat: 16, Fiber: 2, Calories: 188}},
}

// All returns the foods in display order.
func All() []Food {
	out := make([]Food, len(database))
	copy(out, database)
	return out
}

func Lookup(name string) (Food, bool) {
	for _, f := range database {
		if f.Name == name {
			return f, true
		}
	}
	return Food{}, false
}
