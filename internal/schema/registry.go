package schema

import "regexp"

// Built-in section ids.
const (
	SectionDisplay        = "ekran"
	SectionBattery        = "batarya"
	SectionCamera         = "kamera"
	SectionHardware       = "temelDonanim"
	SectionMemory         = "ramDepolama"
	SectionDesign         = "tasarim"
	SectionNetwork        = "agBaglantilari"
	SectionOS             = "isletimSistemi"
	SectionWireless       = "kablosuzBaglantilar"
	SectionMultimedia     = "cokluOrtam"
	SectionDurability     = "dayaniklilik"
	SectionSensors        = "sensorServis"
	SectionOtherPorts     = "digerBaglantilar"
	SectionEULabel        = "abEtiket"
	SectionBasics         = "temelBilgiler"
	DefaultCategory       = "Telefon"
	AllCategoriesSentinel = "Tümü"
)

var longText = regexp.MustCompile(`(?i)(Özellikleri|Seçenekleri|Sensörler|Servis|Ağır Çekim|Kamera Özellikleri|Ekran Özellikleri)`)

type fieldOpt func(*Field)

func card(f *Field) { f.IsCard = true }

func asText(f *Field) { f.Type = FieldText }

func numeric(r NumericRule) fieldOpt {
	return func(f *Field) { f.Numeric = rule(r) }
}

func text(label string, opts ...fieldOpt) Field {
	f := Field{Key: LabelToKey(label), Label: label, Type: FieldText}
	if longText.MatchString(label) {
		f.Type = FieldTextarea
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func flag(label string, opts ...fieldOpt) Field {
	f := Field{Key: LabelToKey(label), Label: label, Type: FieldBoolean}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

var builtin = []Section{
	{
		ID: SectionDisplay, TabLabel: "Ekran", Title: "Ekran",
		Fields: []Field{
			text("Ekran Boyutu", card, numeric(screenRule)),
			text("Ekran Teknolojisi"),
			text("Ekran Çözünürlüğü"),
			text("Ekran Çözünürlüğü Standardı"),
			text("Piksel Yoğunluğu"),
			text("Ekran Yenileme Hızı"),
			text("Ekran Oranı (Aspect Ratio)"),
			text("Ekran Alanı"),
			text("Ekran Özellikleri"),
			text("Ekran Dayanıklılığı"),
			text("Renk Sayısı"),
			text("Ekran / Gövde Oranı"),
		},
	},
	{
		ID: SectionBattery, TabLabel: "Batarya", Title: "Batarya",
		Fields: []Field{
			text("Batarya Kapasitesi (Tipik)", card, numeric(batteryRule)),
			text("Şarj"),
			flag("Hızlı Şarj"),
			text("Hızlı Şarj Gücü (Maks.)"),
			text("Hızlı Şarj Özellikleri"),
			text("Şarj Süresi (Üretici Verisi)"),
			flag("Kablosuz Şarj"),
			text("Kablosuz Şarj Özellikleri"),
			flag("Değişir Batarya"),
			text("Batarya Özellikleri"),
		},
	},
	{
		ID: SectionCamera, TabLabel: "Kamera", Title: "Kamera",
		Fields: []Field{
			text("Kamera Çözünürlüğü", card, numeric(cameraRule)),
			flag("Optik Görüntü Sabitleyici (OIS)"),
			text("Kamera Özellikleri"),
			text("Flaş"),
			text("Diyafram Açıklığı"),
			text("Odak Uzaklığı"),
			text("Kamera Sensör Boyutu"),
			text("Video Kayıt Çözünürlüğü"),
			text("Video FPS Değeri"),
			text("Video Kayıt Özellikleri"),
			text("Video Kayıt Seçenekleri"),
			text("Ağır Çekim Kayıt Seçenekleri"),
			flag("İkinci Arka Kamera"),
			text("İkinci Arka Kamera Çözünürlüğü", numeric(cameraRule)),
			text("İkinci Arka Kamera Diyafram"),
			text("İkinci Arka Kamera Özellikleri"),
			flag("Üçüncü Arka Kamera"),
			text("Üçüncü Arka Kamera Çözünürlüğü", numeric(cameraRule)),
			text("Üçüncü Arka Kamera Diyafram"),
			text("Üçüncü Arka Kamera Özellikleri"),
			text("Ön Kamera Çözünürlüğü", numeric(cameraRule)),
			text("Ön Kamera Video Çözünürlüğü"),
			text("Ön Kamera FPS Değeri"),
			text("Ön Kamera Özellikleri"),
		},
	},
	{
		ID: SectionHardware, TabLabel: "Temel Donanım", Title: "Temel Donanım",
		Fields: []Field{
			text("Yonga Seti (Chipset)", card),
			text("CPU Frekansı"),
			text("CPU Çekirdeği", numeric(coreRule)),
			text("Ana İşlemci (CPU)"),
			text("1. Yardımcı İşlemci"),
			text("İşlemci Mimarisi"),
			text("Grafik İşlemcisi (GPU)"),
			text("GPU Frekansı"),
			text("CPU Üretim Teknolojisi"),
			text("Geekbench 6 (Single-core)", numeric(scoreRule)),
			text("Geekbench 6 (Multi-core)", numeric(scoreRule)),
		},
	},
	{
		ID: SectionMemory, TabLabel: "RAM/Depolama", Title: "RAM / Depolama",
		Fields: []Field{
			text("Bellek (RAM)", card, numeric(memoryRule)),
			text("RAM Tipi"),
			text("Dahili Depolama", numeric(storageRule)),
			text("Dahili Depolama Biçimi"),
			flag("Hafıza Kartı Desteği"),
			text("Diğer Bellek (RAM) Seçenekleri"),
			text("Diğer Hafıza Seçenekleri"),
		},
	},
	{
		ID: SectionDesign, TabLabel: "Tasarım", Title: "Tasarım",
		Fields: []Field{
			text("Boy"),
			text("En"),
			text("Kalınlık"),
			text("Ağırlık"),
			text("Ağırlık Seçenekleri"),
			text("Renk Seçenekleri", asText, card),
			text("Gövde Malzemesi (Çerçeve)"),
		},
	},
	{
		ID: SectionNetwork, TabLabel: "Ağ Bağlantıları", Title: "Ağ Bağlantıları",
		Fields: []Field{
			flag("2G"),
			flag("3G"),
			flag("4G"),
			text("4G Özellikleri"),
			flag("4.5G Desteği"),
			flag("5G", card),
		},
	},
	{
		ID: SectionOS, TabLabel: "İşletim Sistemi", Title: "İşletim Sistemi",
		Fields: []Field{
			text("İşletim Sistemi"),
			text("İşletim Sistemi Versiyonu", card),
			text("Kullanıcı Arayüzü"),
			text("Lansman Arayüz Versiyonu"),
		},
	},
	{
		ID: SectionWireless, TabLabel: "Kablosuz Bağlantılar", Title: "Kablosuz Bağlantılar",
		Fields: []Field{
			text("Wi-Fi Kanalları", card),
			text("Wi-Fi Özellikleri"),
			flag("NFC"),
			text("Bluetooth Versiyonu"),
			text("Bluetooth Özellikleri"),
			flag("Kızılötesi"),
			text("Navigasyon Özellikleri"),
		},
	},
	{
		ID: SectionMultimedia, TabLabel: "Çoklu Ortam", Title: "Çoklu Ortam",
		Fields: []Field{
			flag("Radyo"),
			text("Hoparlör Özellikleri", asText, card),
			text("Ses Çıkışı"),
		},
	},
	{
		ID: SectionDurability, TabLabel: "Dayanıklılık", Title: "Dayanıklılık Özellikleri",
		Fields: []Field{
			flag("Suya Dayanıklılık"),
			text("Suya Dayanıklılık Seviyesi", card),
			flag("Toza Dayanıklılık"),
			text("Toza Dayanıklılık Seviyesi"),
		},
	},
	{
		ID: SectionSensors, TabLabel: "Sensörler ve Servisler", Title: "Sensörler ve Servisler",
		Fields: []Field{
			flag("Görüntülü Konuşma (Uygulama)"),
			text("Sensörler"),
			flag("Parmak izi Okuyucu"),
			text("Parmak izi Okuyucu Özellikleri", asText, card),
			flag("Bildirim Işığı (LED)"),
			text("Servis ve Uygulamalar"),
		},
	},
	{
		ID: SectionOtherPorts, TabLabel: "Diğer Bağlantılar", Title: "Diğer Bağlantılar",
		Fields: []Field{
			text("USB Versiyonu"),
			text("USB Bağlantı Tipi", card),
			text("USB Özellikleri"),
			text("Hat Sayısı"),
			text("SIM"),
		},
	},
	{
		ID: SectionEULabel, TabLabel: "AB Etiketi", Title: "AB Ürün Kayıt ve Enerji Etiketi",
		Fields: []Field{
			text("Enerji Sınıfı"),
			text("Şarj Sonrası Pil Süresi", card),
			text("Düşme Direnci Sınıfı"),
			text("Onarılabilirlik Sınıfı"),
			text("Şarj Döngü Sayısı (AB)"),
			text("Suya ya da Toza Direnç Sınıfı"),
		},
	},
	{
		ID: SectionBasics, TabLabel: "Temel Bilgiler", Title: "Temel Bilgiler",
		Fields: []Field{
			text("Çıkış Yılı"),
			text("Duyurulma Tarihi", card),
			text("Seri"),
		},
	},
}

// BuiltinSections returns a copy of the built-in section registry.
func BuiltinSections() []Section {
	out := make([]Section, len(builtin))
	for i, s := range builtin {
		out[i] = s.clone()
	}
	return out
}

// BuiltinSectionIDs returns the built-in section ids in registry order.
func BuiltinSectionIDs() []string {
	ids := make([]string, len(builtin))
	for i, s := range builtin {
		ids[i] = s.ID
	}
	return ids
}

// IsBuiltin reports whether id names a built-in section.
func IsBuiltin(id string) bool {
	for _, s := range builtin {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (s Section) clone() Section {
	cp := s
	cp.Fields = append([]Field(nil), s.Fields...)
	cp.Categories = append([]string(nil), s.Categories...)
	return cp
}

// Clone returns a copy that shares no slices with s.
func (s Section) Clone() Section {
	return s.clone()
}
