// Package userhub assembles track hubs for the common "one lab, several
// genomes, one composite track per experiment" layout.
//
// [UserHub] wraps a [trackhub.Hub] and its genomes file, [GenomeHub] wraps a
// genome and its root trackDb, and [ExpTrack] turns a list of sample names
// into a composite track with one view per data kind (aligned reads, signal,
// normalized signal) and one track per sample and strand.
//
//	uhub := userhub.New("test", "FuLab", "someone@example.org")
//	hg18 := userhub.NewGenomeHub("hg18")
//	_ = uhub.AddGenomeHub(hg18)
//
//	db, _ := hg18.AddTrackDb("XX")
//	exp := userhub.NewExpTrack("XXChIP", "2013/03 XXChIP", userhub.Options{})
//	_ = exp.AddSamples([]string{"input", "XX"}, true, false)
//	_ = db.AddTracks(exp.Track())
//
//	files, err := uhub.Render(ctx, afero.NewOsFs())
package userhub
