// Package specs turns per-section field values into the specs document
// served for a device: the canonical sections map plus flat convenience
// groups computed from it.
package specs

import (
	"strconv"
	"strings"

	"github.com/princeprakhar/device-catalog/internal/schema"
)

// Group is one flat convenience view, e.g. "display".
type Group map[string]any

// Document is the specs payload of a device. Only Sections is stored; the
// groups are recomputed from it on every read.
type Document struct {
	Network      Group                `json:"network"`
	Body         Group                `json:"body"`
	Display      Group                `json:"display"`
	Platform     Group                `json:"platform"`
	Memory       Group                `json:"memory"`
	MainCamera   Group                `json:"mainCamera"`
	SelfieCamera Group                `json:"selfieCamera"`
	Sound        Group                `json:"sound"`
	Comms        Group                `json:"comms"`
	Features     Group                `json:"features"`
	Battery      Group                `json:"battery"`
	Misc         Group                `json:"misc"`
	Sections     schema.SectionValues `json:"sections"`
}

// Normalize fills every field of the given sections with its empty default
// ("" for text, false for boolean) where the input has no value. Sections
// that are not in the list are kept as they are. The input is not modified.
func Normalize(values schema.SectionValues, sections []schema.Section) schema.SectionValues {
	out := values.Clone()
	for _, sec := range sections {
		vals, ok := out[sec.ID]
		if !ok {
			vals = schema.Values{}
			out[sec.ID] = vals
		}
		for _, f := range sec.Fields {
			if _, ok := vals[f.Key]; ok {
				continue
			}
			if f.IsBoolean() {
				vals[f.Key] = false
			} else {
				vals[f.Key] = ""
			}
		}
	}
	return out
}

// Build returns the full document for values normalized against sections.
// Every convenience group is present even when values is empty.
func Build(values schema.SectionValues, sections []schema.Section) Document {
	sv := Normalize(values, sections)
	s := func(id string) section { return section(sv[id]) }

	ag := s(schema.SectionNetwork)
	tasarim := s(schema.SectionDesign)
	ekran := s(schema.SectionDisplay)
	os := s(schema.SectionOS)
	donanim := s(schema.SectionHardware)
	ram := s(schema.SectionMemory)
	kamera := s(schema.SectionCamera)
	ortam := s(schema.SectionMultimedia)
	kablosuz := s(schema.SectionWireless)
	diger := s(schema.SectionOtherPorts)
	sensor := s(schema.SectionSensors)
	dayanik := s(schema.SectionDurability)
	batarya := s(schema.SectionBattery)
	bilgi := s(schema.SectionBasics)
	etiket := s(schema.SectionEULabel)

	var tech []string
	for _, t := range []struct{ label, name string }{
		{"2G", "2G"}, {"3G", "3G"}, {"4G", "4G"}, {"4.5G Desteği", "4.5G"}, {"5G", "5G"},
	} {
		if ag.flag(t.label) {
			tech = append(tech, t.name)
		}
	}

	wlan := optional(kablosuz.str("Wi-Fi Özellikleri"))
	if ch := kablosuz.str("Wi-Fi Kanalları"); ch != "" {
		wlan = append(wlan, "("+ch+")")
	}

	doc := Document{
		Network: spread(Group{
			"technology": strings.Join(tech, " / "),
			"announced":  bilgi.str("Duyurulma Tarihi"),
			"status":     "",
		}, ag),
		Body: spread(Group{
			"dimensions":     joinNonBlank(" × ", tasarim.str("Boy"), tasarim.str("En"), tasarim.str("Kalınlık")),
			"weight":         tasarim.str("Ağırlık"),
			"sim":            diger.str("SIM"),
			"waterResistant": dayanik.str("Suya Dayanıklılık Seviyesi"),
		}, tasarim, dayanik),
		Display: spread(Group{
			"type":       ekran.str("Ekran Teknolojisi"),
			"size":       ekran.str("Ekran Boyutu"),
			"resolution": ekran.str("Ekran Çözünürlüğü"),
			"protection": ekran.str("Ekran Dayanıklılığı"),
		}, ekran),
		Platform: spread(Group{
			"os":              joinNonBlank(" ", os.str("İşletim Sistemi"), os.str("İşletim Sistemi Versiyonu")),
			"chipset":         donanim.str("Yonga Seti (Chipset)"),
			"cpu":             donanim.str("Ana İşlemci (CPU)"),
			"gpu":             donanim.str("Grafik İşlemcisi (GPU)"),
			"cpuArchitecture": donanim.str("İşlemci Mimarisi"),
			"cpuTechnology":   donanim.str("CPU Üretim Teknolojisi"),
			"cpuCores":        donanim.str("CPU Çekirdeği"),
		}, donanim, os),
		Memory: spread(Group{
			"cardSlot": VarYok(ram.flag("Hafıza Kartı Desteği")),
			"internal": ram.str("Dahili Depolama"),
			"ram":      ram.str("Bellek (RAM)"),
		}, ram),
		MainCamera: spread(Group{
			"triple":      kamera.str("Kamera Çözünürlüğü"),
			"features":    kamera.str("Kamera Özellikleri"),
			"video":       joinNonBlank(" / ", kamera.str("Video Kayıt Çözünürlüğü"), kamera.str("Video FPS Değeri")),
			"ois":         kamera.flag("Optik Görüntü Sabitleyici (OIS)"),
			"flash":       kamera.str("Flaş"),
			"aperture":    kamera.str("Diyafram Açıklığı"),
			"focalLength": kamera.str("Odak Uzaklığı"),
			"sensorSize":  kamera.str("Kamera Sensör Boyutu"),
		}, kamera),
		SelfieCamera: Group{
			"single":   kamera.str("Ön Kamera Çözünürlüğü"),
			"features": kamera.str("Ön Kamera Özellikleri"),
			"video":    joinNonBlank(" / ", kamera.str("Ön Kamera Video Çözünürlüğü"), kamera.str("Ön Kamera FPS Değeri")),
		},
		Sound: spread(Group{
			"loudspeaker": ortam.str("Hoparlör Özellikleri"),
			"jack":        ortam.str("Ses Çıkışı"),
		}, ortam),
		Comms: spread(Group{
			"wlan":        strings.Join(wlan, " "),
			"bluetooth":   joinNonBlank(" / ", kablosuz.str("Bluetooth Versiyonu"), kablosuz.str("Bluetooth Özellikleri")),
			"positioning": kablosuz.str("Navigasyon Özellikleri"),
			"nfc":         VarYok(kablosuz.flag("NFC")),
			"infrared":    VarYok(kablosuz.flag("Kızılötesi")),
			"radio":       VarYok(ortam.flag("Radyo")),
			"usb":         joinNonBlank(" / ", diger.str("USB Versiyonu"), diger.str("USB Bağlantı Tipi"), diger.str("USB Özellikleri")),
		}, kablosuz, diger),
		Features: spread(Group{
			"sensors":              sensor.str("Sensörler"),
			"fingerprint":          sensor.flag("Parmak izi Okuyucu"),
			"fingerprintFeatures":  sensor.str("Parmak izi Okuyucu Özellikleri"),
			"videoCall":            sensor.flag("Görüntülü Konuşma (Uygulama)"),
			"notificationLed":      sensor.flag("Bildirim Işığı (LED)"),
			"services":             sensor.str("Servis ve Uygulamalar"),
			"waterResistance":      dayanik.flag("Suya Dayanıklılık"),
			"waterResistanceLevel": dayanik.str("Suya Dayanıklılık Seviyesi"),
			"dustResistance":       dayanik.flag("Toza Dayanıklılık"),
			"dustResistanceLevel":  dayanik.str("Toza Dayanıklılık Seviyesi"),
		}, sensor, dayanik),
		Battery: spread(Group{
			"type":                 batarya.str("Batarya Kapasitesi (Tipik)"),
			"charging":             batarya.str("Şarj"),
			"fastCharging":         batarya.flag("Hızlı Şarj"),
			"fastChargingPowerMax": batarya.str("Hızlı Şarj Gücü (Maks.)"),
			"wirelessCharging":     batarya.flag("Kablosuz Şarj"),
			"replaceableBattery":   batarya.flag("Değişir Batarya"),
		}, batarya),
		Misc: spread(Group{
			"colors":      tasarim.str("Renk Seçenekleri"),
			"releaseYear": bilgi.str("Çıkış Yılı"),
			"series":      bilgi.str("Seri"),
			"eu":          spread(Group{}, etiket),
		}, bilgi),
		Sections: sv,
	}
	return doc
}

// section reads values by display label.
type section schema.Values

func (s section) str(label string) string {
	return Text(s[schema.LabelToKey(label)])
}

func (s section) flag(label string) bool {
	return Truthy(s[schema.LabelToKey(label)])
}

func spread(g Group, sources ...section) Group {
	for _, src := range sources {
		for k, v := range src {
			g[k] = v
		}
	}
	return g
}

func optional(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func joinNonBlank(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// VarYok renders a boolean the way the catalog shows it.
func VarYok(b bool) string {
	if b {
		return "Var"
	}
	return "Yok"
}

// Truthy reports whether v is true or one of the accepted "yes" spellings.
func Truthy(v any) bool {
	b, ok := Bool(v)
	return ok && b
}

// Bool normalizes booleans and the known yes/no spellings. ok is false for
// anything else.
func Bool(v any) (value, ok bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "var", "true", "evet", "yes":
			return true, true
		case "yok", "false", "hayir", "hayır", "no":
			return false, true
		}
	}
	return false, false
}

// Text stringifies a stored field value. Booleans become Var/Yok.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return VarYok(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}
