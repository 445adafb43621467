package content

// Default returns the built-in datasets.
func Default() Pack {
	return Pack{
		Routines: []Routine{
			{Name: "Making a Cup of Tea", Steps: []string{"Boil water", "Put tea bag in cup", "Pour water", "Add milk"}},
			{Name: "Brushing Teeth", Steps: []string{"Wet toothbrush", "Add toothpaste", "Brush teeth", "Rinse mouth"}},
			{Name: "Getting Dressed", Steps: []string{"Put on underwear", "Put on shirt", "Put on pants", "Put on shoes"}},
		},
		Songs: []Song{
			{
				Title: "You Are My Sunshine",
				Lyric: "You are my sunshine, my only sunshine...",
				Era:   "1940s",
				Options: []SongOption{
					{Text: "You make me happy", Correct: true},
					{Text: "You make me sad"},
				},
			},
			{
				Title: "Somewhere Over the Rainbow",
				Lyric: "Somewhere over the rainbow, way up high...",
				Era:   "1930s",
				Options: []SongOption{
					{Text: "There's a land that I heard of", Correct: true},
					{Text: "There's a place I don't know"},
				},
			},
			{
				Title: "Blue Moon",
				Lyric: "Blue moon, you saw me standing alone...",
				Era:   "1930s",
				Options: []SongOption{
					{Text: "Without a dream in my heart", Correct: true},
					{Text: "Without a care in the world"},
				},
			},
			{
				Title: "Moon River",
				Lyric: "Moon river, wider than a mile...",
				Era:   "1960s",
				Options: []SongOption{
					{Text: "I'm crossing you in style", Correct: true},
					{Text: "I'm sailing you tonight"},
				},
			},
		},
		Memory: []MemoryItem{
			{Name: "Keys"}, {Name: "Glasses"}, {Name: "Apple"}, {Name: "Comb"},
			{Name: "Watch"}, {Name: "Pen"}, {Name: "Book"}, {Name: "Phone"},
		},
		Grocery: Grocery{
			Categories: []GroceryCategory{
				{ID: "fruit", Name: "Fruit"},
				{ID: "tools", Name: "Tools"},
				{ID: "vegetables", Name: "Vegetables"},
				{ID: "clothing", Name: "Clothing"},
			},
			Items: []GroceryItem{
				{Name: "Apple", Category: "fruit"},
				{Name: "Hammer", Category: "tools"},
				{Name: "Banana", Category: "fruit"},
				{Name: "Screwdriver", Category: "tools"},
				{Name: "Carrot", Category: "vegetables"},
				{Name: "Shirt", Category: "clothing"},
				{Name: "Orange", Category: "fruit"},
				{Name: "Wrench", Category: "tools"},
				{Name: "Broccoli", Category: "vegetables"},
				{Name: "Pants", Category: "clothing"},
			},
		},
		People: []Person{
			{Name: "Grandson", Photo: "👦", Relationship: "Grandson"},
			{Name: "Granddaughter", Photo: "👧", Relationship: "Granddaughter"},
			{Name: "Son", Photo: "👨", Relationship: "Son"},
			{Name: "Daughter", Photo: "👩", Relationship: "Daughter"},
			{Name: "Elvis Presley", Photo: "🎤", Relationship: "Famous Singer"},
			{Name: "Marilyn Monroe", Photo: "💃", Relationship: "Famous Actress"},
			{Name: "Gandhi", Photo: "🕊️", Relationship: "Historical Figure"},
			{Name: "Spouse", Photo: "💑", Relationship: "Spouse"},
		},
		Puzzles: []Puzzle{
			oddOne("Dog", "animal", "🐕", "Toaster", "appliance", "🍞"),
			oddOne("Apple", "fruit", "🍎", "Hammer", "tool", "🔨"),
			oddOne("Car", "vehicle", "🚗", "Tree", "plant", "🌳"),
			oddOne("Book", "object", "📚", "Bird", "animal", "🐦"),
			oddOne("Shirt", "clothing", "👕", "Phone", "device", "📱"),
		},
	}
}

func oddOne(name, kind, emoji, oddName, oddKind, oddEmoji string) Puzzle {
	same := PuzzleItem{Name: name, Kind: kind, Emoji: emoji}
	return Puzzle{Items: []PuzzleItem{
		same, same, same,
		{Name: oddName, Kind: oddKind, Emoji: oddEmoji, Odd: true},
	}}
}
