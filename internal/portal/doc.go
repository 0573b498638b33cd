// Package portal implements the safe-update protocol for ood-portal.conf.
//
// The live configuration is shared between the generator and the
// administrator. Every time the generator writes it, it records a digest of
// the file's significant lines in a checksum sidecar. On the next run the
// Controller compares the live file against that digest:
//
//   - digest matches (or no sidecar yet, or --force): the administrator has
//     not changed the file, so it is backed up to <live>.bak and replaced
//   - digest differs: the administrator edited the file, so the candidate is
//     written to <live>.new for review and the live file is left alone
//   - live file already byte-identical to the candidate: nothing is written
//
// # Exit Codes
//
// With detailed exit codes enabled the result code tells a calling script
// which branch ran:
//
//	0  nothing to do
//	3  live file replaced (reload Apache)
//	4  live file diverged, candidate staged
//
// Without detailed exit codes every successful run reports 0. Failures are
// returned as errors; the CLI maps them to exit code 1.
//
// # Failure Semantics
//
// Reading the sidecar or the live file never fails a run: an unreadable file
// is treated as absent, which degrades to first-run behavior. Failing to
// write the backup, the live file, the staged file or the sidecar aborts the
// run with an IO error.
//
// # Usage
//
//	ctrl := portal.New(portal.Settings{
//	    LivePath:          "/opt/rh/httpd24/root/etc/httpd/conf.d/ood-portal.conf",
//	    ChecksumPath:      "/etc/ood/config/ood_portal.sha256sum",
//	    DetailedExitCodes: true,
//	}, template.NewGenerator(opts, optsPath), filesystem.NewOS())
//
//	res, err := ctrl.Update(ctx)
//	if err != nil {
//	    return err
//	}
//	os.Exit(res.ExitCode)
//
// # Concurrency
//
// A Controller is meant to run once per process. Two processes updating the
// same live path concurrently can interleave their backup and write steps;
// callers that need that must serialize runs themselves.
package portal
