package domain

// InstallService is one entry of the bookable service menu.
type InstallService struct {
	Slug     string
	Name     string
	Price    int64 // cents
	Duration int   // minutes
}

var InstallServices = []InstallService{
	{Slug: "head-unit", Name: "Head unit install", Price: 14999, Duration: 90},
	{Slug: "speakers", Name: "Speaker replacement", Price: 9999, Duration: 60},
	{Slug: "amplifier", Name: "Amplifier install", Price: 19999, Duration: 180},
	{Slug: "subwoofer", Name: "Subwoofer and enclosure", Price: 12999, Duration: 120},
	{Slug: "backup-camera", Name: "Backup camera", Price: 11999, Duration: 90},
	{Slug: "remote-start", Name: "Remote start", Price: 17999, Duration: 150},
	{Slug: "consultation", Name: "System consultation", Price: 0, Duration: 30},
}

func ServiceBySlug(slug string) (InstallService, bool) {
	for _, s := range InstallServices {
		if s.Slug == slug {
			return s, true
		}
	}
	return InstallService{}, false
}
