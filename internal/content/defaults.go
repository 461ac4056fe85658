package content

// Default is the SavibeShop page.
func Default() *Page {
	return &Page{
		Brand: "SavibeShop",
		Nav: []NavLink{
			{Href: "#home", Text: "Home"},
			{Href: "#features", Text: "Features"},
			{Href: "#about", Text: "About"},
			{Href: "#contact", Text: "Contact"},
		},
		Hero: Hero{
			Title:    "Trendy Styles Affordable Fashion",
			Tagline:  "Fashion Preloved | Sustainable Style | Unique Collections",
			Intro:    "Selamat datang di SavibeShop. Kami menghadirkan fashion preloved pilihan yang tak hanya mendefinisikan gaya, tapi juga merawat dunia.",
			CTAText:  "Jelajahi Keunggulan Kami",
			CTAHref:  "#features",
			LogoPath: "/logo.svg",
		},
		Features: Section{
			Heading:   "Kenapa",
			Highlight: "SavibeShop?",
			Subtitle:  "Investasi gaya yang berkelanjutan dan penuh makna",
		},
		FeatureSet: []Feature{
			{
				Icon:        "check-circle",
				Title:       "Kualitas Terkurasi",
				Description: "Setiap item melewati seleksi ketat untuk memastikan Anda mendapatkan kualitas dan kondisi terbaik.",
				DelayMs:     0,
			},
			{
				Icon:        "leaf",
				Title:       "Pilihan Sadar Lingkungan",
				Description: "Dengan memilih preloved, Anda secara aktif mengurangi jejak karbon dan limbah industri fashion.",
				DelayMs:     100,
			},
			{
				Icon:        "dollar-sign",
				Title:       "Nilai Terbaik",
				Description: "Tampil menawan dengan brand favorit dan kualitas premium, dengan harga yang lebih bijaksana.",
				DelayMs:     200,
			},
			{
				Icon:        "sparkles",
				Title:       "Koleksi Unik & Langka",
				Description: "Temukan harta karun fashion yang akan membuat gaya Anda berbeda dan tak terlupakan.",
				DelayMs:     300,
			},
		},
		About: About{
			Heading:   "Tentang",
			Highlight: "SavibeShop",
			Paragraphs: []string{
				"SavibeShop adalah pioneer dalam fashion preloved berkualitas tinggi. Kami percaya bahwa setiap pakaian memiliki cerita, dan setiap cerita layak untuk dilanjutkan.",
				"Dengan kurasi yang cermat dan standar kualitas yang tinggi, kami memastikan setiap item yang sampai ke tangan Anda tidak hanya indah, tetapi juga bermakna.",
			},
			Stat: Stat{Value: "1000+", Label: "Happy Customers"},
		},
		Contact: Section{
			Heading:   "Mulai",
			Highlight: "Petualangan Gayamu!",
			Subtitle:  "Kunjungi kami di platform favorit Anda. Koleksi terbaru menanti untuk menjadi bagian dari cerita gaya Anda.",
		},
		Contacts: []Contact{
			{Label: "Instagram", Href: "https://instagram.com/savibeshop", Icon: "instagram", Colors: []string{"#EC4899", "#E11D48"}, DelayMs: 0},
			{Label: "WhatsApp", Href: "https://wa.me/6285855217216", Icon: "message-circle", Colors: []string{"#22C55E", "#16A34A"}, DelayMs: 100},
			{Label: "Shopee", Href: "https://shopee.co.id/babaluana", Icon: "shopping-cart", Colors: []string{"#F97316", "#EA580C"}, DelayMs: 200},
		},
		Footer: "© {year} {brand}. Trendy Styles | Affordable Fashion",
	}
}
