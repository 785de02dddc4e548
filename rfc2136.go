package main

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.devnw.com/event"
	"go.devnw.com/ttl"
)

// zoneCacheTTL bounds how long a discovered authoritative zone is
// reused before being re-queried.
const zoneCacheTTL = time.Minute * 5

var tsigAlgs = map[string]string{
	"hmac-sha1":   dns.HmacSHA1,
	"hmac-sha256": dns.HmacSHA256,
	"hmac-sha512": dns.HmacSHA512,
}

func NewUpdater(
	ctx context.Context,
	pub *event.Publisher,
	cfg *Config,
) (*Updater, error) {
	err := checkNil(ctx, pub, cfg)
	if err != nil {
		return nil, err
	}

	keyname, alg, secret, err := parseTSIG(cfg.TSIG)
	if err != nil {
		return nil, err
	}

	// Updates carry the full delete/add set for a record, so TCP
	// avoids truncation outright.
	client := &dns.Client{
		Net:     "tcp",
		Timeout: time.Second * 10,
	}

	if keyname != "" {
		client.TsigSecret = map[string]string{keyname: secret}
	}

	return &Updater{
		ctx:     ctx,
		pub:     pub,
		cfg:     cfg,
		client:  client,
		keyname: keyname,
		alg:     alg,
		zones:   ttl.NewCache[string, string](ctx, zoneCacheTTL, false),
	}, nil
}

// Updater applies resolved records natively over the DNS update
// protocol instead of rendering them into the directive stream. Each
// record still becomes at most two independent transactions, built
// with the same delete/add ordering the emitter uses.
type Updater struct {
	ctx     context.Context
	pub     *event.Publisher
	cfg     *Config
	client  *dns.Client
	keyname string
	alg     string
	zones   *ttl.Cache[string, string]
}

// Apply sends the forward and reverse transactions for one record.
func (u *Updater) Apply(r *ResolvedRecord) error {
	if u.cfg.Forward {
		zone, err := u.zone(dns.Fqdn(r.Hostname))
		if err != nil {
			return err
		}

		err = u.send(u.forward(zone, r))
		if err != nil {
			return err
		}
	}

	if u.cfg.Reverse {
		zone, err := u.zone(r.Addr.Reverse)
		if err != nil {
			return err
		}

		err = u.send(u.reverse(zone, r))
		if err != nil {
			return err
		}
	}

	return nil
}

// forward builds the A/AAAA transaction for the record within the
// given zone.
func (u *Updater) forward(zone string, r *ResolvedRecord) *dns.Msg {
	msg := &dns.Msg{}
	msg.SetUpdate(zone)

	hdr := dns.RR_Header{
		Name:   dns.Fqdn(r.Hostname),
		Rrtype: r.Addr.Family.RecordType(),
		Class:  dns.ClassINET,
		Ttl:    u.cfg.TTL,
	}

	if u.cfg.DeleteFirst {
		msg.RemoveRRset([]dns.RR{&dns.ANY{Hdr: hdr}})
	}

	if r.Mode != REMOVE {
		ip := net.ParseIP(r.Addr.Text)
		if r.Addr.Family == V6 {
			msg.Insert([]dns.RR{&dns.AAAA{Hdr: hdr, AAAA: ip}})
		} else {
			msg.Insert([]dns.RR{&dns.A{Hdr: hdr, A: ip.To4()}})
		}
	}

	return msg
}

// reverse builds the PTR transaction for the record within the given
// zone. The delete clears every type at the reverse name, matching
// the textual `update delete <reverse-fqdn>` form.
func (u *Updater) reverse(zone string, r *ResolvedRecord) *dns.Msg {
	msg := &dns.Msg{}
	msg.SetUpdate(zone)

	hdr := dns.RR_Header{
		Name:   r.Addr.Reverse,
		Rrtype: dns.TypePTR,
		Class:  dns.ClassINET,
		Ttl:    u.cfg.TTL,
	}

	msg.RemoveName([]dns.RR{&dns.ANY{Hdr: hdr}})

	if r.Mode != REMOVE {
		msg.Insert([]dns.RR{&dns.PTR{
			Hdr: hdr,
			Ptr: dns.Fqdn(r.Hostname),
		}})
	}

	return msg
}

func (u *Updater) send(msg *dns.Msg) error {
	if u.keyname != "" {
		msg.SetTsig(u.keyname, u.alg, 300, time.Now().Unix())
	}

	resp, _, err := u.client.ExchangeContext(u.ctx, msg, u.cfg.ServerAddr())
	if err != nil {
		return err
	}

	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf(
			"server returned %s",
			dns.RcodeToString[resp.Rcode],
		)
	}

	return nil
}

// zone finds the closest enclosing zone for name by walking SOA
// queries toward the root. Inventory feeds hit the same few zones
// over and over, so discoveries are cached.
func (u *Updater) zone(name string) (string, error) {
	zone, ok := u.zones.Get(u.ctx, name)
	if ok {
		return zone, nil
	}

	labels := dns.SplitDomainName(name)
	for i := range labels {
		candidate := dns.Fqdn(strings.Join(labels[i:], "."))

		msg := &dns.Msg{}
		msg.SetQuestion(candidate, dns.TypeSOA)

		resp, _, err := u.client.ExchangeContext(
			u.ctx,
			msg,
			u.cfg.ServerAddr(),
		)
		if err != nil {
			return "", err
		}

		if resp.Rcode != dns.RcodeSuccess {
			continue
		}

		for _, rr := range resp.Answer {
			soa, ok := rr.(*dns.SOA)
			if !ok {
				continue
			}

			err = u.zones.SetTTL(
				u.ctx,
				name,
				soa.Hdr.Name,
				zoneCacheTTL,
			)
			if err != nil {
				return "", err
			}

			return soa.Hdr.Name, nil
		}
	}

	return "", fmt.Errorf("no authoritative zone found for %s", name)
}

// parseTSIG splits a key spec of the form name:secret or
// name:algorithm:secret. The key name is normalized to FQDN form and
// the algorithm defaults to hmac-sha256.
func parseTSIG(spec string) (keyname, alg, secret string, err error) {
	if spec == "" {
		return "", "", "", nil
	}

	parts := strings.SplitN(spec, ":", 3)

	switch len(parts) {
	case 2:
		keyname, alg, secret = parts[0], "hmac-sha256", parts[1]
	case 3:
		keyname, alg, secret = parts[0], parts[1], parts[2]
	default:
		return "", "", "", fmt.Errorf("invalid tsig spec %q", spec)
	}

	algFQDN, ok := tsigAlgs[strings.ToLower(alg)]
	if !ok {
		return "", "", "", fmt.Errorf("unsupported tsig algorithm %q", alg)
	}

	if keyname == "" || secret == "" {
		return "", "", "", fmt.Errorf("invalid tsig spec %q", spec)
	}

	return dns.Fqdn(keyname), algFQDN, secret, nil
}
