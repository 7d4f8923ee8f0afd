package store

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/apimachinery/pkg/util/validation"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/tycho-core/console-app/pkg/logging"
)

const (
	// DefaultConfigMapNamespace is used when no Kubernetes namespace is configured.
	DefaultConfigMapNamespace = "default"

	// Labels and annotations placed on ConfigMaps created by the store.
	ManagedByLabel   = "app.kubernetes.io/managed-by"
	ManagedByValue   = "console-app"
	VendorAnnotation = "console-app/vendor"
	AppAnnotation    = "console-app/app"
)

// ConfigMapStore keeps each namespace in a Kubernetes ConfigMap named
// <vendor>-<app>, one data key per entry.
type ConfigMapStore struct {
	client    client.Client
	namespace string
}

// NewConfigMapStore wraps an existing controller-runtime client.
func NewConfigMapStore(c client.Client, namespace string) *ConfigMapStore {
	if namespace == "" {
		namespace = DefaultConfigMapNamespace
	}
	return &ConfigMapStore{client: c, namespace: namespace}
}

// NewConfigMapStoreForConfig builds a client for config with the core
// Kubernetes types registered.
func NewConfigMapStoreForConfig(config *rest.Config, namespace string) (*ConfigMapStore, error) {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))

	c, err := client.New(config, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return NewConfigMapStore(c, namespace), nil
}

// Namespace returns the Kubernetes namespace holding the ConfigMaps.
func (s *ConfigMapStore) Namespace() string {
	return s.namespace
}

// ConfigMapName returns the ConfigMap name used for ns.
func ConfigMapName(ns Namespace) (string, error) {
	if err := ns.Validate(); err != nil {
		return "", err
	}
	name := strings.ToLower(ns.Vendor + "-" + ns.App)
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return "", fmt.Errorf("%w: %q is not a valid ConfigMap name: %s", ErrInvalidNamespace, name, strings.Join(errs, "; "))
	}
	return name, nil
}

func (s *ConfigMapStore) key(ns Namespace) (client.ObjectKey, error) {
	name, err := ConfigMapName(ns)
	if err != nil {
		return client.ObjectKey{}, err
	}
	return client.ObjectKey{Namespace: s.namespace, Name: name}, nil
}

func (s *ConfigMapStore) Enumerate(ctx context.Context, ns Namespace) ([]Entry, error) {
	cm, err := s.getOrCreate(ctx, ns)
	if err != nil {
		return nil, err
	}
	return entriesFromMap(cm.Data), nil
}

func (s *ConfigMapStore) Get(ctx context.Context, ns Namespace, name string) (string, bool, error) {
	key, err := s.key(ns)
	if err != nil {
		return "", false, err
	}

	cm := &corev1.ConfigMap{}
	if err := s.client.Get(ctx, key, cm); err != nil {
		if apierrors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get configmap %s: %w", key, err)
	}
	value, ok := cm.Data[name]
	return value, ok, nil
}

func (s *ConfigMapStore) Set(ctx context.Context, ns Namespace, name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if errs := validation.IsConfigMapKey(name); len(errs) > 0 {
		return fmt.Errorf("%w: %q: %s", ErrInvalidName, name, strings.Join(errs, "; "))
	}

	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		cm, err := s.getOrCreate(ctx, ns)
		if err != nil {
			return err
		}
		if cm.Data == nil {
			cm.Data = make(map[string]string)
		}
		cm.Data[name] = value
		return s.client.Update(ctx, cm)
	})
}

func (s *ConfigMapStore) Unset(ctx context.Context, ns Namespace, name string) (bool, error) {
	key, err := s.key(ns)
	if err != nil {
		return false, err
	}

	removed := false
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		removed = false
		cm := &corev1.ConfigMap{}
		if err := s.client.Get(ctx, key, cm); err != nil {
			if apierrors.IsNotFound(err) {
				return nil
			}
			return err
		}
		if _, ok := cm.Data[name]; !ok {
			return nil
		}
		delete(cm.Data, name)
		removed = true
		return s.client.Update(ctx, cm)
	})
	if err != nil {
		return false, fmt.Errorf("failed to update configmap %s: %w", key, err)
	}
	return removed, nil
}

// getOrCreate fetches the ConfigMap for ns, creating it empty when missing.
func (s *ConfigMapStore) getOrCreate(ctx context.Context, ns Namespace) (*corev1.ConfigMap, error) {
	key, err := s.key(ns)
	if err != nil {
		return nil, err
	}

	cm := &corev1.ConfigMap{}
	err = s.client.Get(ctx, key, cm)
	if err == nil {
		return cm, nil
	}
	if !apierrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get configmap %s: %w", key, err)
	}

	cm = NewConfigMap(key, ns, nil)
	logging.Debug("Store", "creating empty configmap %s for %s", key, ns)
	if err := s.client.Create(ctx, cm); err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return nil, fmt.Errorf("failed to create configmap %s: %w", key, err)
		}
		if err := s.client.Get(ctx, key, cm); err != nil {
			return nil, fmt.Errorf("failed to get configmap %s: %w", key, err)
		}
	}
	return cm, nil
}

// NewConfigMap builds the ConfigMap object representing ns with the given
// data. It is used both for creation and for manifest export.
func NewConfigMap(key client.ObjectKey, ns Namespace, data map[string]string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      key.Name,
			Namespace: key.Namespace,
			Labels: map[string]string{
				ManagedByLabel: ManagedByValue,
			},
			Annotations: map[string]string{
				VendorAnnotation: ns.Vendor,
				AppAnnotation:    ns.App,
			},
		},
		Data: data,
	}
}
